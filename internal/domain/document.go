package domain

import "time"

// Document is an uploaded reading item owned by exactly one user. Its
// lifetime is bound to the owner: deleting the account cascades here.
type Document struct {
	ID              string
	OwnerID         string
	Name            string
	SizeBytes       int64
	MimeType        string
	ProgressPercent int
	TotalPages      int
	CurrentPage     int
	LastReadAt      *time.Time
	UploadedAt      time.Time
}

// StorageUsage aggregates a user's live document rows.
type StorageUsage struct {
	DocumentCount int
	StorageBytes  int64
}
