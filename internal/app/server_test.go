package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campus-jobs/internal/config"
	"campus-jobs/internal/events"
	"campus-jobs/internal/feed"
	"campus-jobs/internal/infrastructure/cache"
	"campus-jobs/internal/repository/memory"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	events *events.Recorder
	store  *feed.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	local, err := cache.NewLocal(context.Background(), time.Minute)
	if err != nil {
		t.Fatalf("local cache: %v", err)
	}
	t.Cleanup(func() { _ = local.Close() })

	rec := &events.Recorder{}
	c := &Container{
		Config: config.Config{
			App: config.AppConfig{AppName: "campus-jobs-test"},
			JWT: config.JWTConfig{
				AccessSecret:     "access-secret",
				RefreshSecret:    "refresh-secret",
				AccessExpiresIn:  time.Hour,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		Logger: zap.NewNop(),
		Repos:  MemoryRepositories(memory.New()),
		Redis:  cache.NewRedis(config.RedisConfig{}, nil),
		Local:  local,
		Events: rec,
	}
	store := feed.NewStore(nil, local, time.Minute, nil)
	return &testServer{t: t, app: NewServer(c, nil, store), events: rec, store: store}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

type session struct {
	ID    int64
	Token string
}

func (s *testServer) register(username string, recruiter bool) session {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username":     username,
		"email":        username + "@campus.edu",
		"password":     "correct-horse",
		"is_recruiter": recruiter,
	})
	if status != http.StatusCreated {
		s.t.Fatalf("register %s: status %d (%s)", username, status, env.Message)
	}
	var data struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		s.t.Fatalf("decode session: %v", err)
	}
	return session{ID: data.User.ID, Token: data.AccessToken}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if status, _ := s.do(http.MethodGet, "/health", "", nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodGet, "/api/v1/users/me", "", nil)
	if status != http.StatusUnauthorized || env.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}

	status, _ = s.do(http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", status)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "x",
		"email":    "not-an-email",
		"password": "short",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	var fields map[string]string
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	for _, k := range []string{"username", "email", "password"} {
		if fields[k] == "" {
			t.Fatalf("expected a message for %s, got %v", k, fields)
		}
	}

	status, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "longpass",
		"email":    "longpass@campus.edu",
		"password": strings.Repeat("x", 73),
	})
	if status != http.StatusBadRequest {
		t.Fatalf("overlong password: expected 400, got %d", status)
	}
}

func TestDuplicateEmailIsConflict(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", false)

	status, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": "alice2",
		"email":    "alice@campus.edu",
		"password": "correct-horse",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestApplicationLifecycle(t *testing.T) {
	s := newTestServer(t)
	rec := s.register("recruiter", true)
	app := s.register("student", false)

	status, env := s.do(http.MethodPost, "/api/v1/postings", rec.Token, map[string]any{
		"posting_id": 1,
		"job_title":  "Lab assistant",
	})
	if status != http.StatusCreated {
		t.Fatalf("create posting: %d %s", status, env.Message)
	}

	status, _ = s.do(http.MethodPost, "/api/v1/postings", app.Token, map[string]any{
		"posting_id": 2,
		"job_title":  "Not allowed",
	})
	if status != http.StatusForbidden {
		t.Fatalf("non-recruiter create: expected 403, got %d", status)
	}

	status, env = s.do(http.MethodPost, "/api/v1/postings/1/apply", app.Token, nil)
	if status != http.StatusCreated || !bytes.Contains(env.Data, []byte(`"created"`)) {
		t.Fatalf("first apply: %d %s", status, env.Data)
	}
	status, env = s.do(http.MethodPost, "/api/v1/postings/1/apply", app.Token, nil)
	if status != http.StatusOK || !bytes.Contains(env.Data, []byte(`"already_exists"`)) {
		t.Fatalf("second apply: %d %s", status, env.Data)
	}

	status, env = s.do(http.MethodGet, "/api/v1/postings/1/applications", rec.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("list applications: %d", status)
	}
	var apps []struct {
		ApplicantID int64 `json:"applicant_id"`
		Shortlisted bool  `json:"shortlisted"`
	}
	if err := json.Unmarshal(env.Data, &apps); err != nil {
		t.Fatalf("decode applications: %v", err)
	}
	if len(apps) != 1 || apps[0].ApplicantID != app.ID || apps[0].Shortlisted {
		t.Fatalf("unexpected applications %+v", apps)
	}

	path := fmt.Sprintf("/api/v1/postings/1/shortlist/%d", app.ID)
	status, env = s.do(http.MethodPost, path, rec.Token, nil)
	if status != http.StatusOK || !bytes.Contains(env.Data, []byte(`"shortlisted":true`)) {
		t.Fatalf("toggle shortlist: %d %s", status, env.Data)
	}

	status, _ = s.do(http.MethodDelete, "/api/v1/postings/1", app.Token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("delete by non-owner: expected 403, got %d", status)
	}
	status, _ = s.do(http.MethodDelete, "/api/v1/postings/1", rec.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete by owner: %d", status)
	}
	status, _ = s.do(http.MethodGet, "/api/v1/postings/1", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("deleted posting: expected 404, got %d", status)
	}

	want := []string{
		events.SubjectPostingCreated,
		events.SubjectApplicationCreated,
		events.SubjectShortlistToggled,
		events.SubjectPostingDeleted,
	}
	got := s.events.Subjects()
	if len(got) != len(want) {
		t.Fatalf("events: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: want %v, got %v", want, got)
		}
	}
}

func TestScheduleMeeting(t *testing.T) {
	s := newTestServer(t)
	rec := s.register("recruiter", true)
	app := s.register("student", false)

	if status, _ := s.do(http.MethodPost, "/api/v1/postings", rec.Token, map[string]any{
		"posting_id": 7,
		"job_title":  "Tutor",
	}); status != http.StatusCreated {
		t.Fatalf("create posting: %d", status)
	}

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"bad time", map[string]any{"applicant_username": "student", "meeting_time": "invalid-date", "posting_id": 7}, http.StatusBadRequest},
		{"missing posting", map[string]any{"applicant_username": "student", "meeting_time": "2030-05-01T10:00"}, http.StatusBadRequest},
		{"non numeric posting", map[string]any{"applicant_username": "student", "meeting_time": "2030-05-01T10:00", "posting_id": "abc"}, http.StatusBadRequest},
		{"unknown applicant", map[string]any{"applicant_username": "nobody", "meeting_time": "2030-05-01T10:00", "posting_id": 7}, http.StatusNotFound},
		{"unowned posting", map[string]any{"applicant_username": "student", "meeting_time": "2030-05-01T10:00", "posting_id": 8}, http.StatusNotFound},
	}
	for _, tc := range cases {
		if status, _ := s.do(http.MethodPost, "/api/v1/meetings", rec.Token, tc.body); status != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, status)
		}
	}

	status, _ := s.do(http.MethodPost, "/api/v1/meetings", rec.Token, map[string]any{
		"applicant_username": "student",
		"meeting_time":       "2030-05-01T10:00",
		"posting_id":         "7",
	})
	if status != http.StatusCreated {
		t.Fatalf("schedule: expected 201, got %d", status)
	}

	status, env := s.do(http.MethodGet, "/api/v1/meetings/applicant", app.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("list applicant meetings: %d", status)
	}
	var meetings []struct {
		PostingTitle string `json:"posting_title"`
		When         string `json:"when"`
	}
	if err := json.Unmarshal(env.Data, &meetings); err != nil {
		t.Fatalf("decode meetings: %v", err)
	}
	if len(meetings) != 1 || meetings[0].PostingTitle != "Tutor" || meetings[0].When == "" {
		t.Fatalf("unexpected meetings %+v", meetings)
	}
}

func TestReviewPaginationOverHTTP(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author", false)

	for i := 0; i < 11; i++ {
		status, _ := s.do(http.MethodPost, "/api/v1/reviews", author.Token, map[string]any{
			"job_title": fmt.Sprintf("Job %d", i),
			"review":    "fine",
			"rating":    4,
		})
		if status != http.StatusCreated {
			t.Fatalf("create review %d: %d", i, status)
		}
	}

	var sizes []int
	for page := 1; page <= 4; page++ {
		status, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/reviews?page=%d&page_size=5", page), "", nil)
		if status != http.StatusOK {
			t.Fatalf("page %d: %d", page, status)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(env.Data, &items); err != nil {
			t.Fatalf("decode page %d: %v", page, err)
		}
		sizes = append(sizes, len(items))
	}
	if fmt.Sprint(sizes) != "[5 5 1 0]" {
		t.Fatalf("unexpected page sizes %v", sizes)
	}

	status, _ := s.do(http.MethodGet, "/api/v1/reviews?page=-1", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("negative page: expected 400, got %d", status)
	}
}

func TestJobsReturnsStoredSnapshot(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodGet, "/api/v1/jobs", "", nil)
	if status != http.StatusOK || !bytes.Contains(env.Data, []byte(`"listings":[]`)) {
		t.Fatalf("empty feed: %d %s", status, env.Data)
	}

	_ = s.store.Put(context.Background(), feed.Snapshot{
		Listings:    []feed.Listing{{ID: "1", Title: "Library aide", Link: "https://example.edu/1"}},
		RefreshedAt: time.Now().UTC(),
	})
	_, env = s.do(http.MethodGet, "/api/v1/jobs", "", nil)
	if !bytes.Contains(env.Data, []byte("Library aide")) {
		t.Fatalf("expected stored listing, got %s", env.Data)
	}
}
