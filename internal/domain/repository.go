package domain

import "context"

// UserRepository defines access methods for user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *User, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, string, error)
	UpdateSettings(ctx context.Context, id string, settings Settings) error
	UpdatePlan(ctx context.Context, id string, plan PlanID) error
	Delete(ctx context.Context, id string) error
}

// DocumentRepository handles persistence for documents.
type DocumentRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	UsageByOwner(ctx context.Context, ownerID string) (StorageUsage, error)
	Create(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, docID, ownerID string) error
	UpdateProgress(ctx context.Context, docID, ownerID string, progress int) (*Document, error)
}

// SessionRepository persists sign-in sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
