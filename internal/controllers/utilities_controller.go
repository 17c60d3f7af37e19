package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type UtilitiesController struct {
	utilities services.UtilityService
}

func NewUtilitiesController(utilities services.UtilityService) *UtilitiesController {
	return &UtilitiesController{utilities: utilities}
}

var utilityValidate = validator.New()

// POST /api/v1/utilities/types
func (c *UtilitiesController) CreateTypeHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUtilityTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := utilityValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	t := &models.UtilityType{
		Name:          req.Name,
		Pricing:       models.UtilityPricingType(req.Pricing),
		UnitRateCents: req.UnitRateCents,
		UnitOfMeasure: req.UnitOfMeasure,
	}
	created, err := c.utilities.CreateType(r.Context(), t)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/utilities/types
func (c *UtilitiesController) ListTypesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.utilities.ListTypes(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// POST /api/v1/utilities/expenses
func (c *UtilitiesController) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUtilityExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := utilityValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	e := &models.UtilityExpense{
		ContractID:   req.ContractID,
		TypeID:       req.TypeID,
		Name:         req.Name,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		ReadingStart: req.ReadingStart,
		ReadingEnd:   req.ReadingEnd,
		AmountCents:  req.AmountCents,
		Notes:        req.Notes,
	}
	created, err := c.utilities.CreateExpense(r.Context(), e)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/contracts/{id}/utilities
func (c *UtilitiesController) ListByContractHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	list, err := c.utilities.ListExpensesByContract(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// POST /api/v1/utilities/expenses/{id}/bill
func (c *UtilitiesController) BillExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.BillUtilityExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := utilityValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	billed, err := c.utilities.BillExpense(r.Context(), id, req.InvoiceID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, billed)
}
