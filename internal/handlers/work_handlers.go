package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type WorkHandlers struct {
	workService      services.WorkService
	workspaceService services.WorkspaceService
}

func NewWorkHandlers(workService services.WorkService, workspaceService services.WorkspaceService) *WorkHandlers {
	return &WorkHandlers{workService: workService, workspaceService: workspaceService}
}

func (h *WorkHandlers) ListWorks(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	works, listErr := h.workService.List(c.Request().Context(), workspaceID)
	if listErr != nil {
		return common.SendServerError(c, "Failed to list works")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"works": works})
}

func (h *WorkHandlers) CreateWork(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	var req services.CreateWorkRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if validErr := common.ValidateRequiredString(req.Name, "name"); validErr != nil {
		return common.SendValidationError(c, "name", validErr.Error())
	}

	work, createErr := h.workService.Create(c.Request().Context(), workspaceID, &req)
	if createErr != nil {
		return common.SendServerError(c, "Failed to create work")
	}
	return c.JSON(http.StatusCreated, work)
}

func (h *WorkHandlers) GetWork(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	work, getErr := h.workService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Failed to load work")
	}
	if work == nil {
		return common.SendNotFoundError(c, "Work")
	}
	return c.JSON(http.StatusOK, work)
}
