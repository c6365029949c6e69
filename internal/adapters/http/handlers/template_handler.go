package handlers

import (
	"errors"
	"strconv"
	"strings"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TemplateHandler manages the master checklist templates used to seed
// new dossiers. Changing a template never touches existing dossiers.
type TemplateHandler struct {
	templateRepo repositories.TaskTemplateRepository
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateRepo repositories.TaskTemplateRepository) *TemplateHandler {
	return &TemplateHandler{templateRepo: templateRepo}
}

// TemplateRequest represents template create/update request body
type TemplateRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

// List handles listing all templates (Admin only)
// @Summary List task templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /task-templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.templateRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list templates")
	}

	return response.Success(c, "Templates retrieved", fiber.Map{
		"templates": templates,
	})
}

// Create handles adding a template (Admin only)
// @Summary Create task template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TemplateRequest true "Template data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /task-templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return response.BadRequest(c, "Name is required")
	}

	tpl := &models.TaskTemplate{
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	if err := h.templateRepo.Create(c.Context(), tpl); err != nil {
		return response.InternalServerError(c, "Failed to create template")
	}

	return response.Created(c, "Template created", fiber.Map{
		"template": tpl,
	})
}

// Update handles editing a template (Admin only)
// @Summary Update task template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param body body TemplateRequest true "Template data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /task-templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid template ID")
	}

	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tpl, err := h.templateRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Template not found")
		}
		return response.InternalServerError(c, "Failed to get template")
	}

	if strings.TrimSpace(req.Name) != "" {
		tpl.Name = strings.TrimSpace(req.Name)
	}
	if req.SortOrder != 0 {
		tpl.SortOrder = req.SortOrder
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	if err := h.templateRepo.Update(c.Context(), tpl); err != nil {
		return response.InternalServerError(c, "Failed to update template")
	}

	return response.Success(c, "Template updated", fiber.Map{
		"template": tpl,
	})
}

// Delete handles removing a template (Admin only)
// @Summary Delete task template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /task-templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid template ID")
	}

	if _, err := h.templateRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Template not found")
		}
		return response.InternalServerError(c, "Failed to get template")
	}

	if err := h.templateRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete template")
	}

	return response.Success(c, "Template deleted", nil)
}
