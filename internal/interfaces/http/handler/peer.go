package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appaccount "github.com/tkforgeworks/cookconnect/backend/internal/application/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/dto"
)

// PeerHandler serves the internal service-to-service account surface.
// Responses are raw payloads, not the public envelope, so peer clients
// decode them without unwrapping. Not-found is a bare 404; other
// failures carry an error object peers can map back to domain errors.
type PeerHandler struct {
	accounts *appaccount.AccountService
}

// NewPeerHandler creates a new peer handler
func NewPeerHandler(accounts *appaccount.AccountService) *PeerHandler {
	return &PeerHandler{accounts: accounts}
}

// RegisterRoutes registers the internal routes on the root engine
// group, outside the public API version prefix.
func (h *PeerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	internal := rg.Group("/internal/accounts")
	internal.GET("/:id", h.GetSummary)
	internal.POST("/:id/social", h.AddSocialFlag)
	internal.DELETE("/:id/social", h.RemoveSocialFlag)
}

// GetSummary returns the trimmed account view peers consume
func (h *PeerHandler) GetSummary(c *gin.Context) {
	summary, err := h.accounts.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.peerError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddSocialFlag marks the account as holding a social record
func (h *PeerHandler) AddSocialFlag(c *gin.Context) {
	if err := h.accounts.UpdateSocialFlag(c.Request.Context(), c.Param("id"), true); err != nil {
		h.peerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveSocialFlag clears the social marker
func (h *PeerHandler) RemoveSocialFlag(c *gin.Context) {
	if err := h.accounts.UpdateSocialFlag(c.Request.Context(), c.Param("id"), false); err != nil {
		h.peerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PeerHandler) peerError(c *gin.Context, err error) {
	if errors.Is(err, account.ErrAccountNotFound) {
		c.Status(http.StatusNotFound)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == account.ErrAccountNotFound.Code {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(dto.GetHTTPStatus(domainErr.Code), gin.H{
			"error": gin.H{"code": domainErr.Code, "message": domainErr.Message},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": dto.ErrCodeInternal, "message": "An unexpected error occurred"},
	})
}
