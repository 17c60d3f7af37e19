package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type BuildingsController struct {
	buildings services.BuildingService
	revenue   services.RevenueService
}

func NewBuildingsController(buildings services.BuildingService, revenue services.RevenueService) *BuildingsController {
	return &BuildingsController{buildings: buildings, revenue: revenue}
}

var buildingValidate = validator.New()

// POST /api/v1/buildings
func (c *BuildingsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := buildingValidate.StructCtx(r.Context(), req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	b := &models.Building{
		Name:      req.Name,
		Code:      req.Code,
		Street:    req.Street,
		City:      req.City,
		Region:    req.Region,
		Country:   req.Country,
		CompanyID: req.CompanyID,
		OwnerID:   req.OwnerID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		TimeZone:  req.TimeZone,
	}
	created, err := c.buildings.Create(r.Context(), b, req.Floors, req.UnitsPerFloor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/buildings
func (c *BuildingsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.buildings.ListAll(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/buildings/{id}
func (c *BuildingsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	b, err := c.buildings.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// PUT /api/v1/buildings/{id}
func (c *BuildingsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := buildingValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", nil, err)
		return
	}

	b, err := c.buildings.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	b.Name = req.Name
	b.Code = req.Code
	b.Street = req.Street
	b.City = req.City
	b.Region = req.Region
	b.Country = req.Country
	b.OwnerID = req.OwnerID
	b.Latitude = req.Latitude
	b.Longitude = req.Longitude
	b.TimeZone = req.TimeZone

	updated, err := c.buildings.Update(r.Context(), b)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/buildings/{id}
func (c *BuildingsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.buildings.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/buildings/{id}/revenue?as_of=2026-08-01
func (c *BuildingsController) RevenueHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	asOf := time.Now()
	if v := r.URL.Query().Get("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "as_of must be YYYY-MM-DD", nil, err)
			return
		}
		asOf = parsed
	}
	rev, err := c.revenue.ForBuilding(r.Context(), id, asOf)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rev)
}

/* ---------- shared helpers ---------- */

func pathUUID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[key]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, key+" must be a UUID", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
