package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type ContractsController struct {
	contracts services.ContractService
}

func NewContractsController(contracts services.ContractService) *ContractsController {
	return &ContractsController{contracts: contracts}
}

var contractValidate = validator.New()

// POST /api/v1/contracts
func (c *ContractsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := contractValidate.StructCtx(r.Context(), req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	contract := &models.Contract{
		Name:              req.Name,
		TenantID:          req.TenantID,
		BuildingID:        req.BuildingID,
		UnitID:            req.UnitID,
		ResponsibleUserID: req.ResponsibleUserID,
		AmountCents:       req.AmountCents,
		Currency:          req.Currency,
		Recurrence:        models.RecurrenceType(req.Recurrence),
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RentDueDay:        req.RentDueDay,
	}
	created, err := c.contracts.Create(r.Context(), contract)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewContractResponse(created))
}

// GET /api/v1/contracts/{id}
func (c *ContractsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	contract, err := c.contracts.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewContractResponse(contract))
}

// GET /api/v1/buildings/{id}/contracts
func (c *ContractsController) ListByBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	list, err := c.contracts.ListByBuildingID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	out := make([]dtos.ContractResponse, 0, len(list))
	for _, contract := range list {
		out = append(out, dtos.NewContractResponse(contract))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// PUT /api/v1/contracts/{id}
func (c *ContractsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := contractValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	contract, err := c.contracts.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if req.Name != "" {
		contract.Name = req.Name
	}
	contract.AmountCents = req.AmountCents
	if req.Recurrence != "" {
		contract.Recurrence = models.RecurrenceType(req.Recurrence)
	}
	contract.StartDate = req.StartDate
	contract.EndDate = req.EndDate
	contract.RentDueDay = req.RentDueDay

	updated, err := c.contracts.Update(r.Context(), contract)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewContractResponse(updated))
}

// POST /api/v1/contracts/{id}/activate
func (c *ContractsController) ActivateHandler(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.contracts.Activate)
}

// POST /api/v1/contracts/{id}/cancel
func (c *ContractsController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.contracts.Cancel)
}

// POST /api/v1/contracts/{id}/expire
func (c *ContractsController) ExpireHandler(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.contracts.Expire)
}

func (c *ContractsController) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id uuid.UUID) (*models.Contract, error),
) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	contract, err := fn(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewContractResponse(contract))
}
