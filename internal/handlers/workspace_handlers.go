package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type WorkspaceHandlers struct {
	workspaceService services.WorkspaceService
}

func NewWorkspaceHandlers(workspaceService services.WorkspaceService) *WorkspaceHandlers {
	return &WorkspaceHandlers{workspaceService: workspaceService}
}

// resolveWorkspace extracts the workspaceId query parameter and verifies
// the authenticated user is a member. Every workspace-scoped handler goes
// through this; there is no ambient workspace state.
func resolveWorkspace(c echo.Context, workspaceService services.WorkspaceService) (workspaceID, userID uuid.UUID, err error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, uuid.Nil, common.SendUnauthorizedError(c)
	}

	workspaceID, parseErr := common.ValidateUUID(c.QueryParam("workspaceId"), "workspaceId")
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, common.SendValidationError(c, "workspaceId", parseErr.Error())
	}

	if accessErr := workspaceService.ValidateAccess(c.Request().Context(), workspaceID, userID); accessErr != nil {
		if errors.Is(accessErr, services.ErrNoAccess) {
			return uuid.Nil, uuid.Nil, common.SendForbiddenError(c, "No access to workspace")
		}
		return uuid.Nil, uuid.Nil, common.SendServerError(c, "Failed to check workspace access")
	}

	return workspaceID, userID, nil
}

func (h *WorkspaceHandlers) ListWorkspaces(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	workspaces, err := h.workspaceService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list workspaces")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"workspaces": workspaces})
}

func (h *WorkspaceHandlers) CreateWorkspace(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	workspace, err := h.workspaceService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return common.SendServerError(c, "Failed to create workspace")
	}
	return c.JSON(http.StatusCreated, workspace)
}

func (h *WorkspaceHandlers) GetWorkspace(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	workspaceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if accessErr := h.workspaceService.ValidateAccess(c.Request().Context(), workspaceID, userID); accessErr != nil {
		if errors.Is(accessErr, services.ErrNoAccess) {
			return common.SendForbiddenError(c, "No access to workspace")
		}
		return common.SendServerError(c, "Failed to check workspace access")
	}

	workspace, err := h.workspaceService.GetByID(c.Request().Context(), workspaceID)
	if err != nil {
		return common.SendServerError(c, "Failed to load workspace")
	}
	if workspace == nil {
		return common.SendNotFoundError(c, "Workspace")
	}
	return c.JSON(http.StatusOK, workspace)
}

func (h *WorkspaceHandlers) UpdateWorkspace(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	workspaceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if accessErr := h.workspaceService.ValidateAccess(c.Request().Context(), workspaceID, userID); accessErr != nil {
		if errors.Is(accessErr, services.ErrNoAccess) {
			return common.SendForbiddenError(c, "No access to workspace")
		}
		return common.SendServerError(c, "Failed to check workspace access")
	}

	var req services.UpdateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = workspaceID
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	if err := h.workspaceService.Update(c.Request().Context(), &req); err != nil {
		return common.SendServerError(c, "Failed to update workspace")
	}

	updated, err := h.workspaceService.GetByID(c.Request().Context(), workspaceID)
	if err != nil {
		return common.SendServerError(c, "Workspace updated but failed to retrieve")
	}
	return c.JSON(http.StatusOK, updated)
}

type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (h *WorkspaceHandlers) AddMember(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	workspaceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if accessErr := h.workspaceService.ValidateAccess(c.Request().Context(), workspaceID, userID); accessErr != nil {
		if errors.Is(accessErr, services.ErrNoAccess) {
			return common.SendForbiddenError(c, "No access to workspace")
		}
		return common.SendServerError(c, "Failed to check workspace access")
	}

	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	memberID, err := common.ValidateUUID(req.UserID, "user_id")
	if err != nil {
		return common.SendValidationError(c, "user_id", err.Error())
	}

	if err := h.workspaceService.AddMember(c.Request().Context(), workspaceID, memberID); err != nil {
		return common.SendServerError(c, "Failed to add member")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Member added"})
}
