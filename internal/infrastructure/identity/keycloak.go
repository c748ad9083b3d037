// Package identity implements the account context's IdentityProvider
// against a Keycloak admin API. Every operation fetches a fresh admin
// token via the client-credentials grant; tokens are not cached.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/config"
)

// KeycloakClient talks to the Keycloak admin REST API. Calls are plain
// single attempts; retry and breaker policy belong to the caller.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	http         *http.Client
	logger       *zap.Logger
}

// NewKeycloakClient creates a Keycloak-backed identity provider.
func NewKeycloakClient(cfg config.IdentityConfig, logger *zap.Logger) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		realm:        cfg.Realm,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type userRepresentation struct {
	ID            string               `json:"id,omitempty"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	FirstName     string               `json:"firstName,omitempty"`
	LastName      string               `json:"lastName,omitempty"`
	Enabled       bool                 `json:"enabled"`
	EmailVerified bool                 `json:"emailVerified"`
	Credentials   []credentialPayload  `json:"credentials,omitempty"`
}

type credentialPayload struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// CreateIdentity creates the user and resolves its id with an exact
// username search, since the create response carries no body.
func (c *KeycloakClient) CreateIdentity(ctx context.Context, id account.NewIdentity) (string, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return "", err
	}

	payload := userRepresentation{
		Username:      id.Username,
		Email:         id.Email,
		FirstName:     id.GivenName,
		LastName:      id.FamilyName,
		Enabled:       true,
		EmailVerified: true,
		Credentials: []credentialPayload{
			{Type: "password", Value: id.Password, Temporary: false},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users", c.baseURL, c.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		// fall through to id lookup
	case http.StatusConflict:
		return "", shared.NewDomainError(account.ErrDuplicateIdentity.Code, "Identity already exists for this username or email")
	default:
		return "", fmt.Errorf("identity create returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	c.logger.Info("Identity created", zap.String("username", id.Username))

	identities, err := c.findByUsername(ctx, token, id.Username, true)
	if err != nil {
		return "", err
	}
	if len(identities) == 0 {
		return "", fmt.Errorf("identity created but not found by username %q", id.Username)
	}
	return identities[0].ID, nil
}

// DeleteIdentity removes the user. A 404 counts as success so repeated
// compensation attempts converge.
func (c *KeycloakClient) DeleteIdentity(ctx context.Context, externalID string) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.baseURL, c.realm, url.PathEscape(externalID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("identity delete returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}
	c.logger.Info("Identity deleted", zap.String("external_id", externalID))
	return nil
}

// FindIdentityByUsername searches the realm for identities.
func (c *KeycloakClient) FindIdentityByUsername(ctx context.Context, username string, exact bool) ([]account.Identity, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.findByUsername(ctx, token, username, exact)
}

func (c *KeycloakClient) findByUsername(ctx context.Context, token, username string, exact bool) ([]account.Identity, error) {
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users?username=%s&exact=%s",
		c.baseURL, c.realm, url.QueryEscape(username), strconv.FormatBool(exact))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity search returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var users []userRepresentation
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decoding identity search response: %w", err)
	}

	out := make([]account.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, account.Identity{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}
	return out, nil
}

// adminToken obtains a fresh access token via client credentials.
func (c *KeycloakClient) adminToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access token")
	}
	return token.AccessToken, nil
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2048))
	return string(b)
}

// interface guard
var _ account.IdentityProvider = (*KeycloakClient)(nil)
