package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/fintrack/models"
)

// GetCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Category
// @Failure 500 {object} models.ErrorResponse
// @Router /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.storage.GetCategories()
	if err != nil {
		serverError(c, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body models.CreateCategory true "Category fields"
// @Security ApiKeyAuth
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if errs := validateCategory(&req); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := h.storage.CreateCategory(&category); err != nil {
		serverError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategory godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.storage.GetCategory(id)
	if err != nil {
		serverError(c, err, "failed to get category")
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param input body models.CreateCategory true "Category fields"
// @Security ApiKeyAuth
// @Success 200 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.CreateCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if errs := validateCategory(&req); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	category := models.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	}
	found, err := h.storage.UpdateCategory(&category)
	if err != nil {
		serverError(c, err, "failed to update category")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Transactions that reference the category keep existing with category_id set to null.
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.storage.DeleteCategory(id)
	if err != nil {
		serverError(c, err, "failed to delete category")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "category not found"})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "category deleted"})
}
