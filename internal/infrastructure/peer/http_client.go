package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	recipeacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	socialacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/social/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/config"
)

// HTTPDirectory reaches the account service over its internal HTTP
// surface. Calls are single attempts; retry and breaker policy belong
// to the consuming service's resilience executor.
type HTTPDirectory struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPDirectory creates a directory backed by the internal account
// endpoints at cfg.AccountBaseURL.
func NewHTTPDirectory(cfg config.PeerConfig, logger *zap.Logger) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimRight(cfg.AccountBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// GetAccountByID fetches the social-context summary of an account.
// A 404 maps to the account context's not-found error so callers can
// treat remote and local lookups alike.
func (d *HTTPDirectory) GetAccountByID(ctx context.Context, accountID string) (socialacl.AccountSummary, error) {
	var summary socialacl.AccountSummary
	endpoint := fmt.Sprintf("%s/internal/accounts/%s", d.baseURL, url.PathEscape(accountID))
	if err := d.do(ctx, http.MethodGet, endpoint, nil, &summary); err != nil {
		return socialacl.AccountSummary{}, err
	}
	return summary, nil
}

// AddSocialFlag marks the account as holding a social record.
func (d *HTTPDirectory) AddSocialFlag(ctx context.Context, accountID string) error {
	endpoint := fmt.Sprintf("%s/internal/accounts/%s/social", d.baseURL, url.PathEscape(accountID))
	return d.do(ctx, http.MethodPost, endpoint, nil, nil)
}

// RemoveSocialFlag clears the social marker.
func (d *HTTPDirectory) RemoveSocialFlag(ctx context.Context, accountID string) error {
	endpoint := fmt.Sprintf("%s/internal/accounts/%s/social", d.baseURL, url.PathEscape(accountID))
	return d.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetAccountRef resolves creator attribution for the recipe context.
func (d *HTTPDirectory) GetAccountRef(ctx context.Context, accountID string) (recipeacl.AccountRef, error) {
	var summary socialacl.AccountSummary
	endpoint := fmt.Sprintf("%s/internal/accounts/%s", d.baseURL, url.PathEscape(accountID))
	if err := d.do(ctx, http.MethodGet, endpoint, nil, &summary); err != nil {
		return recipeacl.AccountRef{}, err
	}
	return recipeacl.AccountRef{ID: summary.ID, Username: summary.Username}, nil
}

// peerError is the error envelope the internal endpoints return.
type peerError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (d *HTTPDirectory) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return account.ErrAccountNotFound
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var envelope peerError
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Code != "" {
			return shared.NewDomainError(envelope.Error.Code, envelope.Error.Message)
		}
		d.logger.Warn("Peer call failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("peer call %s %s returned status %d", method, endpoint, resp.StatusCode)
	}
}

var (
	_ socialacl.AccountDirectory = (*HTTPDirectory)(nil)
	_ recipeacl.AccountReader    = (*HTTPDirectory)(nil)
)
