package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apprecipe "github.com/tkforgeworks/cookconnect/backend/internal/application/recipe"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/dto"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/middleware"
)

// RecipeHandler handles recipe endpoints
type RecipeHandler struct {
	BaseHandler
	recipes *apprecipe.RecipeService
	auth    gin.HandlerFunc
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipes *apprecipe.RecipeService, auth gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth}
}

// RegisterRoutes registers recipe routes
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes", h.auth)
	recipes.POST("", h.CreateDetailed)
	recipes.POST("/simple", h.CreateSimple)
	recipes.GET("", h.List)
	recipes.GET("/:recipeId", h.Get)
	recipes.POST("/:recipeId/notes", h.AddNote)
	recipes.DELETE("/:recipeId/notes/:noteId", h.RemoveNote)
	recipes.DELETE("/:recipeId", h.Delete)

	rg.GET("/accounts/:id/recipes", h.auth, h.ListByCreator)
}

// CreateSimple creates a recipe with empty component lists
func (h *RecipeHandler) CreateSimple(c *gin.Context) {
	var req apprecipe.CreateRecipeSimpleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.CreatedBy = middleware.GetAuthAccountID(c)

	resp, err := h.recipes.CreateSimple(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateDetailed creates a recipe with composed ingredient,
// instruction and tag lists.
func (h *RecipeHandler) CreateDetailed(c *gin.Context) {
	var req apprecipe.CreateRecipeDetailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.CreatedBy = middleware.GetAuthAccountID(c)

	resp, err := h.recipes.CreateDetailed(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single recipe
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	resp, err := h.recipes.GetByID(c.Request.Context(), recipeID, middleware.GetAuthAccountID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a paginated recipe listing
func (h *RecipeHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.recipes.List(c.Request.Context(), listFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Recipes, resp.Total, resp.Page, resp.PageSize)
}

// ListByCreator returns the recipes created by an account
func (h *RecipeHandler) ListByCreator(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.recipes.ListByCreator(c.Request.Context(), c.Param("id"), listFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Recipes, resp.Total, resp.Page, resp.PageSize)
}

// AddNote attaches a note to a recipe
func (h *RecipeHandler) AddNote(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	var req apprecipe.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.recipes.AddNote(c.Request.Context(), recipeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveNote deletes a note from a recipe
func (h *RecipeHandler) RemoveNote(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		h.BadRequest(c, "Invalid note id")
		return
	}

	if err := h.recipes.RemoveNote(c.Request.Context(), recipeID, noteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a recipe. Shared ingredients, instructions and tags
// stay behind for other recipes.
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), recipeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
