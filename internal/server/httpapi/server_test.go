package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/logging"
	"github.com/mindwell/journal/internal/server/auth"
	"github.com/mindwell/journal/internal/server/config"
	"github.com/mindwell/journal/internal/server/models"
	"github.com/mindwell/journal/internal/server/services"
)

const (
	testSecret        = "test-secret"
	adminID           = "11111111-1111-1111-1111-111111111111"
	adminEmail        = "admin@example.com"
	memberID          = "22222222-2222-2222-2222-222222222222"
	memberEmail       = "member@example.com"
	testPassword      = "s3cret"
	memberEntryID     = "33333333-3333-3333-3333-333333333333"
	memberReflectID   = "44444444-4444-4444-4444-444444444444"
	missingDocumentID = "99999999-9999-9999-9999-999999999999"
)

// memUsersRepo is an in-memory stand-in for the Postgres user repository,
// preserving its error contract (ErrNotFound, ErrDuplicate, ErrEmptyPatch).
type memUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: make(map[string]*models.User)}
}

func (r *memUsersRepo) FetchAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memUsersRepo) FetchByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUsersRepo) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsersRepo) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("%w: email", common.ErrDuplicate)
		}
	}
	inserted := *user
	inserted.ID = uuid.NewString()
	inserted.IsAdmin = false
	inserted.CreatedAt = time.Now()
	r.users[inserted.ID] = &inserted
	copied := inserted
	return &copied, nil
}

func (r *memUsersRepo) applyPatch(u *models.User, patch models.UserPatch) {
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.SaltedPassword != nil {
		u.SaltedPassword = *patch.SaltedPassword
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
}

func (r *memUsersRepo) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	r.applyPatch(u, patch)
	return 1, nil
}

func (r *memUsersRepo) UpdateByEmail(ctx context.Context, email string, patch models.UserPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			r.applyPatch(u, patch)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memUsersRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *memUsersRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == email {
			delete(r.users, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memUsersRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.users))
	r.users = make(map[string]*models.User)
	return n, nil
}

type memEntriesRepo struct {
	mu      sync.Mutex
	entries map[string]*models.Entry
}

func newMemEntriesRepo() *memEntriesRepo {
	return &memEntriesRepo{entries: make(map[string]*models.Entry)}
}

func (r *memEntriesRepo) FetchAll(ctx context.Context) ([]*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memEntriesRepo) FetchByID(ctx context.Context, id string) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memEntriesRepo) FetchByUserID(ctx context.Context, userID string) ([]*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memEntriesRepo) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := *entry
	inserted.ID = uuid.NewString()
	inserted.CreatedAt = time.Now()
	r.entries[inserted.ID] = &inserted
	copied := inserted
	return &copied, nil
}

func (r *memEntriesRepo) UpdateByID(ctx context.Context, id string, patch models.EntryPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return 0, nil
	}
	e.ExampleValue = *patch.ExampleValue
	return 1, nil
}

func (r *memEntriesRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return 0, nil
	}
	delete(r.entries, id)
	return 1, nil
}

func (r *memEntriesRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.entries))
	r.entries = make(map[string]*models.Entry)
	return n, nil
}

type memMindfulnessRepo struct {
	mu      sync.Mutex
	entries map[string]*models.MindfulnessEntry
}

func newMemMindfulnessRepo() *memMindfulnessRepo {
	return &memMindfulnessRepo{entries: make(map[string]*models.MindfulnessEntry)}
}

func (r *memMindfulnessRepo) FetchAll(ctx context.Context) ([]*models.MindfulnessEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.MindfulnessEntry, 0, len(r.entries))
	for _, e := range r.entries {
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memMindfulnessRepo) FetchByID(ctx context.Context, id string) (*models.MindfulnessEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memMindfulnessRepo) FetchByUserID(ctx context.Context, userID string) ([]*models.MindfulnessEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.MindfulnessEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memMindfulnessRepo) Insert(ctx context.Context, entry *models.MindfulnessEntry) (*models.MindfulnessEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := *entry
	inserted.ID = uuid.NewString()
	inserted.CreatedAt = time.Now()
	r.entries[inserted.ID] = &inserted
	copied := inserted
	return &copied, nil
}

func (r *memMindfulnessRepo) UpdateByID(ctx context.Context, id string, patch models.MindfulnessEntryPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return 0, nil
	}
	if patch.QuestionGrateful != nil {
		e.QuestionGrateful = *patch.QuestionGrateful
	}
	if patch.QuestionServiceSelf != nil {
		e.QuestionServiceSelf = *patch.QuestionServiceSelf
	}
	if patch.QuestionServiceOthers != nil {
		e.QuestionServiceOthers = *patch.QuestionServiceOthers
	}
	return 1, nil
}

func (r *memMindfulnessRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return 0, nil
	}
	delete(r.entries, id)
	return 1, nil
}

func (r *memMindfulnessRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.entries))
	r.entries = make(map[string]*models.MindfulnessEntry)
	return n, nil
}

type testEnv struct {
	server      *HTTPServer
	users       *memUsersRepo
	entries     *memEntriesRepo
	mindfulness *memMindfulnessRepo
}

// newTestEnv builds a server over in-memory repositories, pre-seeded with
// an admin, a regular member, and one journal entry plus one reflection
// owned by the member.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	digest, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}

	usersRepo := newMemUsersRepo()
	usersRepo.users[adminID] = &models.User{
		ID: adminID, FirstName: "Ada", LastName: "Admin",
		Email: adminEmail, SaltedPassword: string(digest),
		IsAdmin: true, CreatedAt: time.Now(),
	}
	usersRepo.users[memberID] = &models.User{
		ID: memberID, FirstName: "Mia", LastName: "Member",
		Email: memberEmail, SaltedPassword: string(digest),
		CreatedAt: time.Now(),
	}

	entriesRepo := newMemEntriesRepo()
	entriesRepo.entries[memberEntryID] = &models.Entry{
		ID: memberEntryID, UserID: memberID,
		ExampleValue: "walked in the park", CreatedAt: time.Now(),
	}

	mindfulnessRepo := newMemMindfulnessRepo()
	mindfulnessRepo.entries[memberReflectID] = &models.MindfulnessEntry{
		ID: memberReflectID, UserID: memberID,
		QuestionGrateful:      "morning coffee",
		QuestionServiceSelf:   "went for a run",
		QuestionServiceOthers: "helped a neighbour",
		CreatedAt:             time.Now(),
	}

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	server := NewHTTPServer(":0", logger,
		services.NewUserService(usersRepo, cfg),
		services.NewEntryService(entriesRepo),
		services.NewMindfulnessService(mindfulnessRepo),
		testSecret,
	)

	return &testEnv{
		server:      server,
		users:       usersRepo,
		entries:     entriesRepo,
		mindfulness: mindfulnessRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.server.engine.ServeHTTP(rec, req)
	return rec
}

func bearerFor(t *testing.T, email string) map[string]string {
	t.Helper()
	token, err := auth.GenerateToken(email, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func basicFor(email, password string) map[string]string {
	payload := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	return map[string]string{"Authorization": "Basic " + payload}
}

// decodeEnvelope unwraps the {status, data} envelope and checks the two
// status values agree.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Status int            `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	if envelope.Status != rec.Code {
		t.Errorf("envelope status = %d, http status = %d", envelope.Status, rec.Code)
	}
	return envelope.Data
}

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "OK" {
		t.Errorf("status = %q, want OK", body["status"])
	}
}
