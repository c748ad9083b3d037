package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsocial "github.com/tkforgeworks/cookconnect/backend/internal/application/social"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/middleware"
)

// CookbookHandler handles cookbook endpoints
type CookbookHandler struct {
	BaseHandler
	cookbooks *appsocial.CookbookService
	auth      gin.HandlerFunc
}

// NewCookbookHandler creates a new cookbook handler
func NewCookbookHandler(cookbooks *appsocial.CookbookService, auth gin.HandlerFunc) *CookbookHandler {
	return &CookbookHandler{cookbooks: cookbooks, auth: auth}
}

// RegisterRoutes registers cookbook routes
func (h *CookbookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	owned := rg.Group("/accounts/:id/cookbooks", h.auth)
	owned.GET("", h.ListByOwner)

	self := owned.Group("", middleware.RequireSelf("id"))
	self.POST("", h.Create)
	self.DELETE("/:cookbookId", h.Delete)

	books := rg.Group("/cookbooks", h.auth)
	books.GET("/:cookbookId", h.Get)
	books.POST("/:cookbookId/entries", h.AddEntry)
	books.DELETE("/:cookbookId/entries/:entryId", h.RemoveEntry)
}

// Create adds a cookbook to the account's social record
func (h *CookbookHandler) Create(c *gin.Context) {
	var req appsocial.CreateCookbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.cookbooks.CreateCookbookFor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOwner returns the account's cookbooks
func (h *CookbookHandler) ListByOwner(c *gin.Context) {
	resp, err := h.cookbooks.ListCookbooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a single cookbook
func (h *CookbookHandler) Get(c *gin.Context) {
	cookbookID, err := uuid.Parse(c.Param("cookbookId"))
	if err != nil {
		h.BadRequest(c, "Invalid cookbook id")
		return
	}

	resp, err := h.cookbooks.GetCookbook(c.Request.Context(), cookbookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddEntry adds a recipe entry to a cookbook
func (h *CookbookHandler) AddEntry(c *gin.Context) {
	cookbookID, err := uuid.Parse(c.Param("cookbookId"))
	if err != nil {
		h.BadRequest(c, "Invalid cookbook id")
		return
	}

	var req appsocial.CookbookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.cookbooks.AddEntry(c.Request.Context(), cookbookID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveEntry removes a recipe entry from a cookbook
func (h *CookbookHandler) RemoveEntry(c *gin.Context) {
	cookbookID, err := uuid.Parse(c.Param("cookbookId"))
	if err != nil {
		h.BadRequest(c, "Invalid cookbook id")
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.BadRequest(c, "Invalid entry id")
		return
	}

	if err := h.cookbooks.RemoveEntry(c.Request.Context(), cookbookID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a cookbook from the account's social record
func (h *CookbookHandler) Delete(c *gin.Context) {
	cookbookID, err := uuid.Parse(c.Param("cookbookId"))
	if err != nil {
		h.BadRequest(c, "Invalid cookbook id")
		return
	}

	if err := h.cookbooks.DeleteCookbook(c.Request.Context(), c.Param("id"), cookbookID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
