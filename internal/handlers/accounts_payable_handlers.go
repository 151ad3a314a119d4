package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

type AccountsPayableHandlers struct {
	payableService   services.AccountsPayableService
	workspaceService services.WorkspaceService
}

func NewAccountsPayableHandlers(payableService services.AccountsPayableService, workspaceService services.WorkspaceService) *AccountsPayableHandlers {
	return &AccountsPayableHandlers{payableService: payableService, workspaceService: workspaceService}
}

func (h *AccountsPayableHandlers) ListPayables(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("perPage"))
	page, perPage = common.ValidatePaginationParams(page, perPage)

	status := models.AccountStatus(strings.ToUpper(c.QueryParam("status")))
	switch status {
	case "", models.AccountPending, models.AccountPaid, models.AccountLate:
	default:
		return common.SendValidationError(c, "status", "must be one of PENDING, PAID, LATE")
	}

	filter := repositories.PayableFilter{
		Search:   common.SanitizeSearchQuery(c.QueryParam("search")),
		Status:   status,
		SortBy:   c.QueryParam("sortBy"),
		SortDesc: c.QueryParam("sortOrder") == "desc",
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	entries, total, listErr := h.payableService.List(c.Request().Context(), workspaceID, filter)
	if listErr != nil {
		return common.SendServerError(c, "Failed to list accounts payable")
	}

	pageCount := (total + perPage - 1) / perPage
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      entries,
		"total":     total,
		"page":      page,
		"perPage":   perPage,
		"pageCount": pageCount,
	})
}

func (h *AccountsPayableHandlers) GetPayable(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	entry, getErr := h.payableService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Failed to load entry")
	}
	if entry == nil {
		return common.SendNotFoundError(c, "Accounts payable entry")
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *AccountsPayableHandlers) CreatePayable(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	var req services.CreatePayableRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if validErr := common.ValidatePositiveFloat(req.Amount, "amount"); validErr != nil {
		return common.SendValidationError(c, "amount", validErr.Error())
	}
	if req.DueDate.IsZero() {
		return common.SendValidationError(c, "due_date", "due_date is required")
	}

	entry, createErr := h.payableService.Create(c.Request().Context(), workspaceID, &req)
	if createErr != nil {
		return common.SendClientError(c, createErr.Error())
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *AccountsPayableHandlers) UpdatePayable(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	var req services.UpdatePayableRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id
	if validErr := common.ValidatePositiveFloat(req.Amount, "amount"); validErr != nil {
		return common.SendValidationError(c, "amount", validErr.Error())
	}

	if updateErr := h.payableService.Update(c.Request().Context(), workspaceID, &req); updateErr != nil {
		return common.SendClientError(c, updateErr.Error())
	}

	updated, getErr := h.payableService.GetByID(c.Request().Context(), workspaceID, id)
	if getErr != nil {
		return common.SendServerError(c, "Entry updated but failed to retrieve")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AccountsPayableHandlers) DeletePayable(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	if deleteErr := h.payableService.Delete(c.Request().Context(), workspaceID, id); deleteErr != nil {
		return common.SendServerError(c, "Failed to delete entry")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Entry deleted"})
}

type MarkPaidRequest struct {
	PaidDate *time.Time `json:"paid_date"`
}

func (h *AccountsPayableHandlers) MarkPaid(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	id, parseErr := common.ValidateUUID(c.Param("id"), "id")
	if parseErr != nil {
		return common.SendValidationError(c, "id", parseErr.Error())
	}

	var req MarkPaidRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	paidDate := time.Now()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}

	if markErr := h.payableService.MarkPaid(c.Request().Context(), workspaceID, id, paidDate); markErr != nil {
		return common.SendClientError(c, markErr.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Entry marked as paid"})
}

func (h *AccountsPayableHandlers) GetPayableSummary(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	summary, sumErr := h.payableService.Summary(c.Request().Context(), workspaceID)
	if sumErr != nil {
		return common.SendServerError(c, "Failed to compute summary")
	}
	return c.JSON(http.StatusOK, summary)
}
