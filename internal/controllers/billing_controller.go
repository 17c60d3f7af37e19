package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type BillingController struct {
	billing   services.BillingService
	reminders services.ReminderService
	contracts repositories.ContractRepository
	invoices  repositories.InvoiceRepository
}

func NewBillingController(
	billing services.BillingService,
	reminders services.ReminderService,
	contracts repositories.ContractRepository,
	invoices repositories.InvoiceRepository,
) *BillingController {
	return &BillingController{billing: billing, reminders: reminders, contracts: contracts, invoices: invoices}
}

var billingValidate = validator.New()

// POST /api/v1/billing/run
// Manual trigger for one building's daily pass on an explicit day.
func (c *BillingController) RunHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RunBillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := billingValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	if err := c.billing.RunForBuilding(r.Context(), req.BuildingID, services.DateOnly(req.Day)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/billing/remind
// Manual trigger for the reminder-only pass, same request shape.
func (c *BillingController) RemindHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RunBillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := billingValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	if err := c.reminders.RunForBuilding(r.Context(), req.BuildingID, services.DateOnly(req.Day)); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/contracts/{id}/invoices
func (c *BillingController) ListContractInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	contract, err := c.contracts.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if contract == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Contract not found", nil, nil)
		return
	}

	list, err := c.invoices.ListByTags(r.Context(), contract.TenantID, contract.BuildingID, contract.UnitID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	out := make([]dtos.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dtos.NewInvoiceResponse(inv, nil))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /api/v1/invoices/{id}
func (c *BillingController) GetInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	inv, err := c.invoices.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if inv == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found", nil, nil)
		return
	}
	lines, err := c.invoices.ListLines(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewInvoiceResponse(inv, lines))
}
