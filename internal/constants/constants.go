package constants

const (
	AppName = "rental-service"

	// Daily passes run shortly after midnight server time; each building
	// is still evaluated against its own local calendar day.
	DailyPassCronSpec = "5 0 * * *"

	// Activity summaries for rent reminders.
	ActivityPayRent     = "Pay Rent"
	ActivityCollectRent = "Collect Rent (Uncovered Amount)"

	// Rent lines book against the configured income account; prepayment
	// consumption lines book against the advance (liability) account.
	DefaultIncomeAccountCode  = "400100"
	DefaultAdvanceAccountCode = "250100"

	DefaultCurrency = "USD"

	MinRentDueDay = 1
	MaxRentDueDay = 31
)
