package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal stand-in for the CRM API.
type fakeBackend struct {
	mu         sync.Mutex
	authHeader []string
	requestIDs []string
	lastBody   map[string]any
}

func (f *fakeBackend) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authHeader = append(f.authHeader, r.Header.Get("Authorization"))
	f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))
	if r.Body != nil {
		var body map[string]any
		if json.NewDecoder(r.Body).Decode(&body) == nil {
			f.lastBody = body
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T) (*HTTPClient, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fb.record(r)
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		if fb.lastBody["password"] != "secret123" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok1", "user": map[string]any{"id": 1, "email": fb.lastBody["email"], "is_premium": false}})
	})
	r.Post("/api/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		if fb.lastBody["email"] == "taken@b.com" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"non_field_errors": []string{"Email already registered"}})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"token": "tok-new", "user": map[string]any{"id": 2, "is_premium": true}})
	})
	r.Get("/api/auth/user/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid token."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "first_name": "Ada", "is_premium": true})
	})
	r.Get("/api/contacts/{id}/lead_score/", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "13" {
			writeJSON(w, http.StatusOK, map[string]any{"lead_score": 140})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"lead_score": 72})
	})
	r.Get("/api/contacts/{id}/follow_up_suggestions/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": []map[string]any{
			{"title": "Call back", "description": "Ask about renewal", "priority": "HIGH"},
		}})
	})
	r.Get("/api/contacts/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 7, "first_name": "Max", "lead_score": 0}})
	})
	r.Get("/api/contacts/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "first_name":`))
	})
	r.Delete("/api/contacts/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/tasks/{id}/complete/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 3, "title": "Call", "completed": true})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return NewHTTPClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}), fb
}

func TestLogin_Success(t *testing.T) {
	c, fb := newTestServer(t)

	resp, err := c.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "tok1", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.False(t, resp.User.IsPremium)
	assert.Equal(t, "a@b.com", fb.lastBody["email"])
}

func TestLogin_FailureCarriesServerMessage(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", MessageOf(err))
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestRegister(t *testing.T) {
	c, fb := newTestServer(t)

	resp, err := c.Register(context.Background(), models.RegisterRequest{Email: "new@b.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "tok-new", resp.Token)
	assert.True(t, resp.User.IsPremium)
	_, hasConfirm := fb.lastBody["password_confirm"]
	assert.False(t, hasConfirm)

	_, err = c.Register(context.Background(), models.RegisterRequest{Email: "taken@b.com"})
	assert.Equal(t, "Email already registered", MessageOf(err))
}

func TestCurrentUser_TokenAttachAndDetach(t *testing.T) {
	c, fb := newTestServer(t)
	ctx := context.Background()

	_, err := c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid token.", MessageOf(err))

	c.SetAuthToken("tok1")
	u, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	assert.True(t, u.IsPremium)

	c.RemoveAuthToken()
	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	fb.mu.Lock()
	defer fb.mu.Unlock()
	assert.Equal(t, []string{"", "Token tok1", ""}, fb.authHeader)
	for _, id := range fb.requestIDs {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "request id %q", id)
	}
}

func TestAuthScheme_Configurable(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"id": 5})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(Options{BaseURL: srv.URL, AuthScheme: "Bearer"})
	c.SetAuthToken("abc")
	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
}

func TestServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(Options{BaseURL: url, Timeout: time.Second})
	_, err := c.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, MessageOf(err))
}

func TestMalformedResponse(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.GetContact(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAuthResponse_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 1}})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(Options{BaseURL: srv.URL})
	_, err := c.Login(context.Background(), "a@b.com", "x")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEnrichmentEndpoints(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	score, err := c.LeadScore(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 72, score)

	_, err = c.LeadScore(ctx, 13)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	sugg, err := c.FollowUpSuggestions(ctx, 7)
	require.NoError(t, err)
	require.Len(t, sugg, 1)
	assert.Equal(t, models.PriorityHigh, sugg[0].Priority)
}

func TestCRMEndpoints(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	contacts, err := c.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, int64(7), contacts[0].ID)

	require.NoError(t, c.DeleteContact(ctx, 7))

	task, err := c.CompleteTask(ctx, 3)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api error: 500 Internal Server Error", (&APIError{Status: 500}).Error())
	assert.Equal(t, "api error: 400: bad", (&APIError{Status: 400, Message: "bad"}).Error())
	assert.ErrorIs(t, &APIError{Status: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: http.StatusForbidden}, ErrForbidden)
	assert.NotErrorIs(t, &APIError{Status: http.StatusForbidden}, ErrUnauthorized)
	assert.NoError(t, (&APIError{Status: http.StatusNotFound}).Unwrap())
}
