package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"arnio/internal/auth"
	"arnio/internal/docstore"
	"arnio/internal/domain"
	"arnio/internal/http/handlers"
	"arnio/internal/http/httpapi"
	"arnio/internal/infra"
	"arnio/internal/recommend"
)

// Wire shapes as a client sees them. Only the fields the assertions touch.
type userDTO struct {
	ID   string `json:"id"`
	Plan string `json:"plan"`
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type uploadRequest struct {
	Name       string `json:"name"`
	SizeBytes  int64  `json:"size"`
	MimeType   string `json:"type"`
	TotalPages int    `json:"totalPages"`
}

type progressRequest struct {
	Progress int `json:"progress"`
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

type planDTO struct {
	ID     string `json:"id"`
	Limits struct {
		MaxDocuments int64 `json:"maxDocuments"`
	} `json:"limits"`
}

type documentDTO struct {
	ID       string     `json:"id"`
	Progress int        `json:"progress"`
	LastRead *time.Time `json:"lastRead"`
}

type memUsers struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	hashes  map[string]string
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		hashes:  make(map[string]string),
	}
}

func (m *memUsers) Create(_ context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	u := *user
	u.CreatedAt = time.Now()
	m.byID[u.ID] = &u
	m.byEmail[u.Email] = &u
	m.hashes[u.Email] = passwordHash
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, string, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, m.hashes[email], nil
	}
	return nil, "", domain.ErrNotFound
}

func (m *memUsers) UpdateSettings(_ context.Context, id string, settings domain.Settings) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Settings = settings
	return nil
}

func (m *memUsers) UpdatePlan(_ context.Context, id string, plan domain.PlanID) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PlanID = plan
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

type memDocs struct {
	rows map[string]*domain.Document
}

func newMemDocs() *memDocs {
	return &memDocs{rows: make(map[string]*domain.Document)}
}

func (m *memDocs) ListByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range m.rows {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDocs) UsageByOwner(_ context.Context, ownerID string) (domain.StorageUsage, error) {
	var usage domain.StorageUsage
	for _, d := range m.rows {
		if d.OwnerID == ownerID {
			usage.DocumentCount++
			usage.StorageBytes += d.SizeBytes
		}
	}
	return usage, nil
}

func (m *memDocs) Create(_ context.Context, doc *domain.Document) error {
	d := *doc
	d.UploadedAt = time.Now()
	m.rows[d.ID] = &d
	doc.UploadedAt = d.UploadedAt
	return nil
}

func (m *memDocs) Delete(_ context.Context, docID, ownerID string) error {
	d, ok := m.rows[docID]
	if !ok || d.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.rows, docID)
	return nil
}

func (m *memDocs) UpdateProgress(_ context.Context, docID, ownerID string, progress int) (*domain.Document, error) {
	d, ok := m.rows[docID]
	if !ok || d.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	d.ProgressPercent = progress
	now := time.Now()
	d.LastReadAt = &now
	return d, nil
}

type memSessions struct {
	rows map[string]*domain.Session
}

func newMemSessions() *memSessions {
	return &memSessions{rows: make(map[string]*domain.Session)}
}

func (m *memSessions) Create(_ context.Context, session *domain.Session) error {
	s := *session
	m.rows[s.ID] = &s
	return nil
}

func (m *memSessions) GetByID(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := m.rows[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type testEnv struct {
	server *httptest.Server
	users  *memUsers
	docs   *memDocs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newMemUsers()
	docs := newMemDocs()
	sessions := newMemSessions()
	logger := zerolog.Nop()

	authSvc := auth.NewService(users, sessions, auth.Options{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
		Logger:     logger,
	})
	docSvc := docstore.NewService(docs, users, nil, time.Second, logger)
	recSvc := recommend.NewService(nil)

	app := &handlers.App{
		Auth:   authSvc,
		Docs:   docSvc,
		Rec:    recSvc,
		Logger: logger,
	}
	cfg := &infra.Config{
		JWTSecret:       "test-secret",
		DefaultLocale:   "en",
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: 1000,
	}
	router := httpapi.NewRouter(app, httpapi.Options{Config: cfg, Sessions: authSvc})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{server: server, users: users, docs: docs}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (e *testEnv) signUp(t *testing.T, email string) (string, userDTO) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email": email, "password": "correct horse", "name": "Reader",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status %d", resp.StatusCode)
	}
	var out sessionResponse
	decodeBody(t, resp, &out)
	return out.Token, out.User
}

func errorCode(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	return body.Error.Code, body.Error.Message
}

func TestSignUpThenMe(t *testing.T) {
	env := newTestEnv(t)
	token, user := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodGet, "/v1/me", token, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status %d", resp.StatusCode)
	}
	var me userDTO
	decodeBody(t, resp, &me)
	if me.ID != user.ID || me.Plan != "free" {
		t.Fatalf("me = %+v", me)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/v1/me", "/v1/documents", "/v1/insights"} {
		resp := env.do(t, http.MethodGet, path, "", nil, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodPost, "/v1/auth/signout", token, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("signout status %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodGet, "/v1/me", token, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me after signout: status %d, want 401", resp.StatusCode)
	}
}

func TestUploadDeniedOverFreeLimit(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "reader@example.com")

	for i := 0; i < 3; i++ {
		resp := env.do(t, http.MethodPost, "/v1/documents", token, uploadRequest{
			Name: fmt.Sprintf("doc-%d.pdf", i), SizeBytes: 1024, MimeType: "application/pdf",
		}, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("upload %d: status %d", i, resp.StatusCode)
		}
	}

	resp := env.do(t, http.MethodPost, "/v1/documents", token, uploadRequest{
		Name: "doc-4.pdf", SizeBytes: 1024, MimeType: "application/pdf",
	}, map[string]string{"X-Locale": "id"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("fourth upload: status %d, want 403", resp.StatusCode)
	}
	code, message := errorCode(t, resp)
	if code != "document_limit_exceeded" {
		t.Errorf("code = %q", code)
	}
	if !strings.Contains(message, "Batas dokumen") {
		t.Errorf("message not localized to id: %q", message)
	}
}

func TestDeleteRequiresProPlan(t *testing.T) {
	env := newTestEnv(t)
	token, user := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodPost, "/v1/documents", token, uploadRequest{
		Name: "doc.pdf", SizeBytes: 1024, MimeType: "application/pdf",
	}, nil)
	var doc documentDTO
	decodeBody(t, resp, &doc)

	resp = env.do(t, http.MethodDelete, "/v1/documents/"+doc.ID, token, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("delete on free plan: status %d, want 403", resp.StatusCode)
	}
	if code, _ := errorCode(t, resp); code != "deletion_not_permitted" {
		t.Fatalf("code = %q", code)
	}

	env.users.byID[user.ID].PlanID = domain.PlanPro
	resp = env.do(t, http.MethodDelete, "/v1/documents/"+doc.ID, token, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete on pro plan: status %d, want 204", resp.StatusCode)
	}
}

func TestProgressValidation(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodPost, "/v1/documents", token, uploadRequest{
		Name: "doc.pdf", SizeBytes: 1024, MimeType: "application/pdf", TotalPages: 200,
	}, nil)
	var doc documentDTO
	decodeBody(t, resp, &doc)

	resp = env.do(t, http.MethodPatch, "/v1/documents/"+doc.ID+"/progress", token, progressRequest{Progress: 150}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("progress 150: status %d, want 400", resp.StatusCode)
	}
	if code, _ := errorCode(t, resp); code != "invalid_progress" {
		t.Fatalf("code = %q", code)
	}

	resp = env.do(t, http.MethodPatch, "/v1/documents/"+doc.ID+"/progress", token, progressRequest{Progress: 60}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("progress 60: status %d, want 200", resp.StatusCode)
	}
	var updated documentDTO
	decodeBody(t, resp, &updated)
	if updated.Progress != 60 || updated.LastRead == nil {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestRecommendationsGatedByPlan(t *testing.T) {
	env := newTestEnv(t)
	token, user := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodGet, "/v1/recommendations/books", token, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("books on free: status %d, want 403", resp.StatusCode)
	}
	if code, _ := errorCode(t, resp); code != "feature_not_available" {
		t.Fatalf("code = %q", code)
	}

	env.users.byID[user.ID].PlanID = domain.PlanBasic
	resp = env.do(t, http.MethodGet, "/v1/recommendations/books", token, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("books on basic: status %d", resp.StatusCode)
	}
	var body struct {
		Recommendations []recommend.Book `json:"recommendations"`
	}
	decodeBody(t, resp, &body)
	if len(body.Recommendations) != 5 {
		t.Fatalf("basic got %d recommendations, want 5", len(body.Recommendations))
	}
}

func TestChangePlanAndCancel(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signUp(t, "reader@example.com")

	resp := env.do(t, http.MethodPost, "/v1/me/plan", token, changePlanRequest{Plan: "ultraPro"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("change plan: status %d", resp.StatusCode)
	}
	var plan planDTO
	decodeBody(t, resp, &plan)
	if plan.ID != "ultraPro" || plan.Limits.MaxDocuments != -1 {
		t.Fatalf("plan = %+v", plan)
	}

	resp = env.do(t, http.MethodPost, "/v1/me/plan", token, changePlanRequest{Plan: "platinum"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown plan: status %d, want 400", resp.StatusCode)
	}
	if code, _ := errorCode(t, resp); code != "unknown_plan" {
		t.Fatalf("code = %q", code)
	}

	resp = env.do(t, http.MethodDelete, "/v1/me/plan", token, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel plan: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &plan)
	if plan.ID != "free" {
		t.Fatalf("cancel landed on %q, want free", plan.ID)
	}
}

func TestPlansArePublic(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/v1/plans", "", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("plans status %d", resp.StatusCode)
	}
	var body struct {
		Plans []planDTO `json:"plans"`
	}
	decodeBody(t, resp, &body)
	if len(body.Plans) != 4 || body.Plans[0].ID != "free" {
		t.Fatalf("plans = %+v", body.Plans)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/v1/catalog/books?page=1&limit=2", "", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("catalog list status %d", resp.StatusCode)
	}
	var page struct {
		Books []json.RawMessage `json:"books"`
	}
	decodeBody(t, resp, &page)
	if len(page.Books) != 2 {
		t.Fatalf("catalog page returned %d books", len(page.Books))
	}

	resp = env.do(t, http.MethodGet, "/v1/catalog/search?q=memory", "", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("catalog search status %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/v1/catalog/books/999", "", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing book status %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHealthWithoutStore(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/v1/healthz", "", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}
}
