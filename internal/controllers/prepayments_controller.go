package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type PrepaymentsController struct {
	prepayments services.PrepaymentService
}

func NewPrepaymentsController(prepayments services.PrepaymentService) *PrepaymentsController {
	return &PrepaymentsController{prepayments: prepayments}
}

var prepaymentValidate = validator.New()

// POST /api/v1/prepayments
func (c *PrepaymentsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePrepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := prepaymentValidate.StructCtx(r.Context(), req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	p := &models.Prepayment{
		ContractID:  req.ContractID,
		Date:        req.Date,
		Months:      req.Months,
		AmountCents: req.AmountCents,
		Description: req.Description,
	}
	created, err := c.prepayments.Create(r.Context(), p)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/contracts/{id}/prepayments
func (c *PrepaymentsController) ListByContractHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	list, err := c.prepayments.ListByContract(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/contracts/{id}/prepayments/balance
func (c *PrepaymentsController) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	balance, err := c.prepayments.Balance(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PrepaymentBalanceResponse{
		ContractID:   id,
		BalanceCents: balance,
	})
}

// DELETE /api/v1/prepayments/{id}
func (c *PrepaymentsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.prepayments.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
