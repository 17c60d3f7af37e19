package routes

const (
	// Health
	Health = "/health"

	// Buildings
	Buildings         = "/api/v1/buildings"
	Building          = "/api/v1/buildings/{id}"
	BuildingUnits     = "/api/v1/buildings/{id}/units"
	BuildingContracts = "/api/v1/buildings/{id}/contracts"
	BuildingRevenue   = "/api/v1/buildings/{id}/revenue"

	// Units
	Units     = "/api/v1/units"
	Unit      = "/api/v1/units/{id}"
	UnitOwner = "/api/v1/units/{id}/owner"

	// Contracts
	Contracts        = "/api/v1/contracts"
	Contract         = "/api/v1/contracts/{id}"
	ContractActivate = "/api/v1/contracts/{id}/activate"
	ContractCancel   = "/api/v1/contracts/{id}/cancel"
	ContractExpire   = "/api/v1/contracts/{id}/expire"

	// Prepayment ledger
	Prepayments               = "/api/v1/prepayments"
	Prepayment                = "/api/v1/prepayments/{id}"
	ContractPrepayments       = "/api/v1/contracts/{id}/prepayments"
	ContractPrepaymentBalance = "/api/v1/contracts/{id}/prepayments/balance"

	// Billing
	BillingRun       = "/api/v1/billing/run"
	BillingRemind    = "/api/v1/billing/remind"
	ContractInvoices = "/api/v1/contracts/{id}/invoices"
	Invoice          = "/api/v1/invoices/{id}"

	// Utilities
	UtilityTypes       = "/api/v1/utilities/types"
	UtilityExpenses    = "/api/v1/utilities/expenses"
	UtilityExpenseBill = "/api/v1/utilities/expenses/{id}/bill"
	ContractUtilities  = "/api/v1/contracts/{id}/utilities"
)
