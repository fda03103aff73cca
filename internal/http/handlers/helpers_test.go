package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/middleware"
	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/storage/memstore"
	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

// envelope mirrors the respond package's wire shape for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	store  *memstore.Store
	tokens *auth.TokenManager
	mux    *http.ServeMux
}

// newTestEnv wires all handlers onto a mux exactly as the server does,
// backed by the in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	tokens := auth.NewTokenManager("test-secret", "rentalfinder-test", time.Hour)

	mux := http.NewServeMux()
	NewAuthHandler(store, tokens).Register(mux)
	NewListingHandler(store, tokens).Register(mux)
	mux.Handle("/inquiries", middleware.RequireAuth(tokens, http.HandlerFunc(NewInquiryHandler(store).Handle)))
	mux.Handle("/dashboard/inquiries", middleware.RequireAuth(tokens, http.HandlerFunc(NewDashboardHandler(store).Handle)))

	return &testEnv{store: store, tokens: tokens, mux: mux}
}

// createUser seeds a user directly in the store and returns it with a
// valid bearer token.
func (e *testEnv) createUser(t *testing.T, username, email, role string) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user, err := e.store.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	token, err := e.tokens.Generate(user)
	require.NoError(t, err)
	return user, token
}

// do issues a request against the mux. A non-empty token is sent as a
// bearer credential; a non-nil body is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}
