package handler

import (
	"github.com/gin-gonic/gin"

	appaccount "github.com/tkforgeworks/cookconnect/backend/internal/application/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/dto"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/middleware"
)

// AccountHandler handles registration and account management endpoints
type AccountHandler struct {
	BaseHandler
	provisioning *appaccount.ProvisioningService
	accounts     *appaccount.AccountService
	auth         gin.HandlerFunc
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(provisioning *appaccount.ProvisioningService, accounts *appaccount.AccountService, auth gin.HandlerFunc) *AccountHandler {
	return &AccountHandler{
		provisioning: provisioning,
		accounts:     accounts,
		auth:         auth,
	}
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	accounts.POST("/register", h.Register)

	authed := accounts.Group("", h.auth)
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)

	self := authed.Group("/:id", middleware.RequireSelf("id"))
	self.DELETE("", h.Deprovision)
	self.PATCH("", h.Update)
	self.PUT("/profile", h.UpdateProfile)
	self.POST("/addresses", h.AddAddress)
	self.DELETE("/addresses/:addressId", h.RemoveAddress)
}

// Register provisions a new account against the identity provider and
// the local store.
func (h *AccountHandler) Register(c *gin.Context) {
	var req appaccount.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.provisioning.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Deprovision removes the account locally and from the identity provider
func (h *AccountHandler) Deprovision(c *gin.Context) {
	if err := h.provisioning.Deprovision(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns a single account
func (h *AccountHandler) Get(c *gin.Context) {
	resp, err := h.accounts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated account listing
func (h *AccountHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.accounts.List(c.Request.Context(), listFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Accounts, resp.Total, resp.Page, resp.PageSize)
}

// Update edits mutable account settings
func (h *AccountHandler) Update(c *gin.Context) {
	var req appaccount.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.accounts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile edits the account profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req appaccount.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.accounts.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddAddress adds a profile address
func (h *AccountHandler) AddAddress(c *gin.Context) {
	var req appaccount.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.accounts.AddAddress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveAddress removes a profile address
func (h *AccountHandler) RemoveAddress(c *gin.Context) {
	resp, err := h.accounts.RemoveAddress(c.Request.Context(), c.Param("id"), c.Param("addressId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
