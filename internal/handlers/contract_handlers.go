package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type ContractHandlers struct {
	contractService  services.ContractService
	workspaceService services.WorkspaceService
}

func NewContractHandlers(contractService services.ContractService, workspaceService services.WorkspaceService) *ContractHandlers {
	return &ContractHandlers{contractService: contractService, workspaceService: workspaceService}
}

func (h *ContractHandlers) ListContracts(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	contracts, listErr := h.contractService.List(c.Request().Context(), workspaceID)
	if listErr != nil {
		return common.SendServerError(c, "Failed to list contracts")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"contracts": contracts})
}

func (h *ContractHandlers) GetContract(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	contract, getErr := h.contractService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Failed to load contract")
	}
	if contract == nil {
		return common.SendNotFoundError(c, "Contract")
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandlers) CreateContract(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	var req services.CreateContractRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if validErr := common.ValidateRequiredString(req.Name, "name"); validErr != nil {
		return common.SendValidationError(c, "name", validErr.Error())
	}

	contract, createErr := h.contractService.Create(c.Request().Context(), workspaceID, &req)
	if createErr != nil {
		return common.SendClientError(c, createErr.Error())
	}
	return c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandlers) UpdateContract(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	var req services.UpdateContractRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id
	if validErr := common.ValidateRequiredString(req.Name, "name"); validErr != nil {
		return common.SendValidationError(c, "name", validErr.Error())
	}

	if updateErr := h.contractService.Update(c.Request().Context(), workspaceID, &req); updateErr != nil {
		return common.SendClientError(c, updateErr.Error())
	}

	updated, getErr := h.contractService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Contract updated but failed to retrieve")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ContractHandlers) DeleteContract(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	if deleteErr := h.contractService.Delete(c.Request().Context(), workspaceID, id); deleteErr != nil {
		return common.SendServerError(c, "Failed to delete contract")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Contract deleted"})
}

func (h *ContractHandlers) GetContractSummary(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	summary, sumErr := h.contractService.Summary(c.Request().Context(), workspaceID)
	if sumErr != nil {
		return common.SendServerError(c, "Failed to compute contract summary")
	}
	return c.JSON(http.StatusOK, summary)
}
