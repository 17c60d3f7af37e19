package utils

import (
	"errors"
	"net/http"

	"github.com/jackc/pgconn"
)

/*
   Sentinel errors for rental-service domain logic.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	// Validation errors (user-correctable, block the save/action)
	ErrAmountNotPositive    = errors.New("amount_not_positive")
	ErrMonthsNotPositive    = errors.New("months_not_positive")
	ErrRentDueDayOutOfRange = errors.New("rent_due_day_out_of_range")
	ErrNoIncomeAccount      = errors.New("no_income_account_configured")

	// User errors (missing required context)
	ErrNoTenant = errors.New("no_tenant_on_contract")

	// Constraint violations (data integrity)
	ErrDuplicateContractState = errors.New("duplicate_contract_state_for_unit")
	ErrUnitNotInBuilding      = errors.New("unit_not_in_building")

	ErrInvoiceNotDraft      = errors.New("invoice_not_draft")
	ErrExpenseAlreadyBilled = errors.New("expense_already_billed")
	ErrPrepaymentConsumed   = errors.New("prepayment_already_consumed")
	ErrNotFound             = errors.New("not_found")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// IsUniqueViolation reports whether err is a Postgres unique-violation (23505),
// e.g. the UNIQUE(unit_id, state) constraint on contracts.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: msg, Err: err}
}

func NewUserError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusUnprocessableEntity, Code: ErrCodeMissingContext, Message: msg, Err: err}
}

func NewConflictError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: msg, Err: err}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: msg, Err: ErrNotFound}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	if IsUniqueViolation(err) {
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "A record with the same identity already exists", nil, err)
		return
	}
	// Fallback for unexpected error types
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
