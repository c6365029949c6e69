package handlers

import (
	"strconv"

	"daotrack/internal/adapters/http/middleware"
	"daotrack/internal/core/services"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles task comment endpoints
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List handles listing comments of a dossier
// @Summary List comments
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param taskId query int false "Restrict to one task"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	var taskID *int
	if raw := c.Query("taskId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "Invalid task ID")
		}
		taskID = &id
	}

	comments, err := h.commentService.ListByDao(c.Context(), c.Params("id"), taskID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Comments retrieved", fiber.Map{
		"comments": comments,
	})
}

// Create handles attaching a comment to a task
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dao ID"
// @Param body body services.CreateCommentInput true "Comment data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /daos/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var input services.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, _ := middleware.Actor(c)

	comment, err := h.commentService.Create(c.Context(), c.Params("id"), &input, actorID)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Comment created", fiber.Map{
		"comment": comment,
	})
}

// UpdateCommentRequest represents comment edit request body
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Update handles editing a comment (author or admin)
// @Summary Update comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param body body UpdateCommentRequest true "New content"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	var req UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, actorRole := middleware.Actor(c)

	comment, err := h.commentService.Update(c.Context(), c.Params("id"), req.Content, actorID, actorRole)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Comment updated", fiber.Map{
		"comment": comment,
	})
}

// Delete handles removing a comment (author or admin)
// @Summary Delete comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actorID, actorRole := middleware.Actor(c)

	if err := h.commentService.Delete(c.Context(), c.Params("id"), actorID, actorRole); err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Comment deleted", nil)
}
