package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type EquipmentHandlers struct {
	equipmentService services.EquipmentService
	workspaceService services.WorkspaceService
}

func NewEquipmentHandlers(equipmentService services.EquipmentService, workspaceService services.WorkspaceService) *EquipmentHandlers {
	return &EquipmentHandlers{equipmentService: equipmentService, workspaceService: workspaceService}
}

func (h *EquipmentHandlers) ListEquipment(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	search := common.SanitizeSearchQuery(c.QueryParam("search"))
	status := services.EquipmentStatus(strings.ToUpper(c.QueryParam("status")))
	switch status {
	case "", services.EquipmentAvailable, services.EquipmentRented, services.EquipmentMaintenance:
	default:
		return common.SendValidationError(c, "status", "must be one of AVAILABLE, RENTED, MAINTENANCE")
	}

	items, listErr := h.equipmentService.List(c.Request().Context(), workspaceID, search, status)
	if listErr != nil {
		return common.SendServerError(c, "Failed to list equipment")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"equipment": items})
}

func (h *EquipmentHandlers) GetEquipment(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	equipment, getErr := h.equipmentService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Failed to load equipment")
	}
	if equipment == nil {
		return common.SendNotFoundError(c, "Equipment")
	}
	return c.JSON(http.StatusOK, equipment)
}

func (h *EquipmentHandlers) CreateEquipment(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	var req services.CreateEquipmentRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if validErr := common.ValidateRequiredString(req.Name, "name"); validErr != nil {
		return common.SendValidationError(c, "name", validErr.Error())
	}

	equipment, createErr := h.equipmentService.Create(c.Request().Context(), workspaceID, &req)
	if createErr != nil {
		return common.SendClientError(c, createErr.Error())
	}
	return c.JSON(http.StatusCreated, equipment)
}

func (h *EquipmentHandlers) UpdateEquipment(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	var req services.UpdateEquipmentRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id
	if validErr := common.ValidateRequiredString(req.Name, "name"); validErr != nil {
		return common.SendValidationError(c, "name", validErr.Error())
	}

	if updateErr := h.equipmentService.Update(c.Request().Context(), workspaceID, &req); updateErr != nil {
		return common.SendClientError(c, updateErr.Error())
	}

	updated, getErr := h.equipmentService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Equipment updated but failed to retrieve")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *EquipmentHandlers) DeleteEquipment(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	if deleteErr := h.equipmentService.Delete(c.Request().Context(), workspaceID, id); deleteErr != nil {
		return common.SendServerError(c, "Failed to delete equipment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Equipment deleted"})
}
