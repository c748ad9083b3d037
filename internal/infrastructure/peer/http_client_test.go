package peer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/config"
)

func newDirectory(srv *httptest.Server) *HTTPDirectory {
	return NewHTTPDirectory(config.PeerConfig{
		Mode:           "http",
		AccountBaseURL: srv.URL,
		Timeout:        2 * time.Second,
	}, zap.NewNop())
}

func TestGetAccountByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/accounts/ext-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":                   "ext-1",
			"username":             "alice",
			"hasSocialInteraction": true,
			"privateAccount":       false,
		})
	}))
	t.Cleanup(srv.Close)

	summary, err := newDirectory(srv).GetAccountByID(context.Background(), "ext-1")

	require.NoError(t, err)
	assert.Equal(t, "alice", summary.Username)
	assert.True(t, summary.HasSocialInteraction)
}

func TestGetAccountByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := newDirectory(srv).GetAccountByID(context.Background(), "missing")

	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestSocialFlagRoundTrip(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/accounts/ext-1/social", r.URL.Path)
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	dir := newDirectory(srv)
	require.NoError(t, dir.AddSocialFlag(context.Background(), "ext-1"))
	require.NoError(t, dir.RemoveSocialFlag(context.Background(), "ext-1"))
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "ALREADY_EXISTS", "message": "Social record already exists"},
		})
	}))
	t.Cleanup(srv.Close)

	err := newDirectory(srv).AddSocialFlag(context.Background(), "ext-1")

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}

func TestGetAccountRefMapsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "ext-2", "username": "bob"})
	}))
	t.Cleanup(srv.Close)

	ref, err := newDirectory(srv).GetAccountRef(context.Background(), "ext-2")

	require.NoError(t, err)
	assert.Equal(t, "bob", ref.Username)
}
