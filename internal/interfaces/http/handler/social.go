package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsocial "github.com/tkforgeworks/cookconnect/backend/internal/application/social"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/middleware"
)

// SocialHandler handles social record, follow and bookmark endpoints
type SocialHandler struct {
	BaseHandler
	social *appsocial.SocialService
	auth   gin.HandlerFunc
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(social *appsocial.SocialService, auth gin.HandlerFunc) *SocialHandler {
	return &SocialHandler{social: social, auth: auth}
}

// RegisterRoutes registers social routes
func (h *SocialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/accounts/:id/social", h.auth)
	records.GET("", h.Get)
	records.GET("/followers", h.GetFollowers)
	records.GET("/following", h.GetFollowing)
	records.GET("/bookmarks", h.GetBookmarks)

	self := records.Group("", middleware.RequireSelf("id"))
	self.POST("", h.Create)
	self.DELETE("", h.Delete)
	self.POST("/following/:targetId", h.Follow)
	self.DELETE("/following/:targetId", h.Unfollow)
	self.POST("/bookmarks/:recipeId", h.Bookmark)
	self.DELETE("/bookmarks/:recipeId", h.Unbookmark)
}

// Create opens a social record for the account
func (h *SocialHandler) Create(c *gin.Context) {
	resp, err := h.social.CreateSocialRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns the account's social record
func (h *SocialHandler) Get(c *gin.Context) {
	resp, err := h.social.GetSocialRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes the account's social record
func (h *SocialHandler) Delete(c *gin.Context) {
	if err := h.social.DeleteSocialRecord(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetFollowers returns the account ids following this account
func (h *SocialHandler) GetFollowers(c *gin.Context) {
	followers, err := h.social.GetFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, followers)
}

// GetFollowing returns the account ids this account follows
func (h *SocialHandler) GetFollowing(c *gin.Context) {
	following, err := h.social.GetFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, following)
}

// GetBookmarks returns the account's bookmarked recipe ids
func (h *SocialHandler) GetBookmarks(c *gin.Context) {
	bookmarks, err := h.social.GetBookmarks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bookmarks)
}

// Follow records the account following the target, updating both sides
func (h *SocialHandler) Follow(c *gin.Context) {
	resp, err := h.social.Follow(c.Request.Context(), c.Param("id"), c.Param("targetId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unfollow removes the follow relation on both sides
func (h *SocialHandler) Unfollow(c *gin.Context) {
	if err := h.social.Unfollow(c.Request.Context(), c.Param("id"), c.Param("targetId")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Bookmark adds a recipe to the account's bookmarks
func (h *SocialHandler) Bookmark(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	resp, err := h.social.Bookmark(c.Request.Context(), c.Param("id"), recipeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unbookmark removes a recipe from the account's bookmarks
func (h *SocialHandler) Unbookmark(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	if err := h.social.Unbookmark(c.Request.Context(), c.Param("id"), recipeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
