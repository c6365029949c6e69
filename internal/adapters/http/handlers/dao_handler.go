package handlers

import (
	"strconv"

	"daotrack/internal/adapters/http/middleware"
	"daotrack/internal/core/domain"
	"daotrack/internal/core/services"
	"daotrack/internal/pkg/pagination"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DaoHandler handles dossier endpoints
type DaoHandler struct {
	daoService *services.DaoService
}

// NewDaoHandler creates a new dossier handler
func NewDaoHandler(daoService *services.DaoService) *DaoHandler {
	return &DaoHandler{daoService: daoService}
}

// List handles listing dossiers
// @Summary List dossiers
// @Tags Daos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by derived status (completed/urgent/safe/default)"
// @Success 200 {object} response.Response
// @Router /daos [get]
func (h *DaoHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.daoService.List(c.Context(), &services.ListDaosInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: domain.DaoStatus(c.Query("status")),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list dossiers")
	}

	return response.Success(c, "Dossiers retrieved", result)
}

// GetByID handles getting a dossier by ID
// @Summary Get dossier
// @Tags Daos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id} [get]
func (h *DaoHandler) GetByID(c *fiber.Ctx) error {
	dao, err := h.daoService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Dossier retrieved", fiber.Map{
		"dao": dao,
	})
}

// Create handles creating a dossier (Admin only)
// @Summary Create dossier
// @Tags Daos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDaoInput true "Dossier data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /daos [post]
func (h *DaoHandler) Create(c *fiber.Ctx) error {
	var input services.CreateDaoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dao, err := h.daoService.Create(c.Context(), &input)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Dossier created", fiber.Map{
		"dao": dao,
	})
}

// Update handles updating dossier metadata or team
// @Summary Update dossier
// @Tags Daos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param body body services.UpdateDaoInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id} [put]
func (h *DaoHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateDaoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dao, err := h.daoService.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Dossier updated", fiber.Map{
		"dao": dao,
	})
}

// Delete handles deleting a dossier (Admin only)
// @Summary Delete dossier
// @Tags Daos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id} [delete]
func (h *DaoHandler) Delete(c *fiber.Ctx) error {
	if err := h.daoService.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Dossier deleted", nil)
}

// NextNumber previews the next free serial for the current year
// @Summary Next dossier number
// @Tags Daos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /daos/next-number [get]
func (h *DaoHandler) NextNumber(c *fiber.Ctx) error {
	numero, err := h.daoService.NextNumber(c.Context())
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Next number", fiber.Map{
		"numeroListe": numero,
	})
}

// AddTask handles adding a custom task (Admin only)
// @Summary Add task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param body body domain.TaskDraft true "Task data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /daos/{id}/tasks [post]
func (h *DaoHandler) AddTask(c *fiber.Ctx) error {
	var draft domain.TaskDraft
	if err := c.BodyParser(&draft); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, _ := middleware.Actor(c)

	dao, err := h.daoService.AddTask(c.Context(), c.Params("id"), draft, actorID)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Task added", fiber.Map{
		"dao": dao,
	})
}

// UpdateTask handles a partial task update
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param taskId path int true "Task ID"
// @Param body body domain.TaskPatch true "Patch"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /daos/{id}/tasks/{taskId} [put]
func (h *DaoHandler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var patch domain.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Renaming a task is a structural change reserved to admins
	if patch.Name.Present {
		_, role := middleware.Actor(c)
		if !domain.Allowed(role, domain.PermTaskStructural) {
			return response.Forbidden(c, "Only an admin can rename a task")
		}
	}

	actorID, _ := middleware.Actor(c)

	dao, err := h.daoService.UpdateTask(c.Context(), c.Params("id"), taskID, patch, actorID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Task updated", fiber.Map{
		"dao": dao,
	})
}

// DeleteTask handles removing a task (Admin only)
// @Summary Delete task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param taskId path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id}/tasks/{taskId} [delete]
func (h *DaoHandler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	dao, err := h.daoService.DeleteTask(c.Context(), c.Params("id"), taskID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Task deleted", fiber.Map{
		"dao": dao,
	})
}

// AssignRequest represents task assignment request body
type AssignRequest struct {
	MemberID string `json:"memberId"`
}

// AssignTask handles assigning a task to a team member
// @Summary Assign task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param taskId path int true "Task ID"
// @Param body body AssignRequest true "Team member"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /daos/{id}/tasks/{taskId}/assign [put]
func (h *DaoHandler) AssignTask(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, _ := middleware.Actor(c)

	dao, err := h.daoService.AssignTask(c.Context(), c.Params("id"), taskID, req.MemberID, actorID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Task assigned", fiber.Map{
		"dao": dao,
	})
}

// UnassignTask handles clearing a task assignment
// @Summary Unassign task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param taskId path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id}/tasks/{taskId}/assign [delete]
func (h *DaoHandler) UnassignTask(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	actorID, _ := middleware.Actor(c)

	dao, err := h.daoService.UnassignTask(c.Context(), c.Params("id"), taskID, actorID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Task unassigned", fiber.Map{
		"dao": dao,
	})
}
