package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/poofware/rental-service/internal/app"
	"github.com/poofware/rental-service/internal/config"
	"github.com/poofware/rental-service/internal/constants"
	"github.com/poofware/rental-service/internal/controllers"
	"github.com/poofware/rental-service/internal/middleware"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/routes"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

func main() {
	utils.InitLogger(constants.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rental-service:", err)
	}
	defer application.Close()

	buildingRepo := repositories.NewBuildingRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	partnerRepo := repositories.NewPartnerRepository(application.DB)
	userRepo := repositories.NewUserRepository(application.DB)
	contractRepo := repositories.NewContractRepository(application.DB)
	prepaymentRepo := repositories.NewPrepaymentRepository(application.DB)
	consumptionRepo := repositories.NewConsumptionRepository(application.DB)
	invoiceRepo := repositories.NewInvoiceRepository(application.DB)
	activityRepo := repositories.NewActivityRepository(application.DB)
	utilityRepo := repositories.NewUtilityRepository(application.DB)

	notifier := services.NewNotifier(
		cfg.SendGridAPIKey,
		cfg.AppName,
		cfg.LDFlag_SendgridFromEmail,
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.LDFlag_TwilioFromPhone,
	)

	buildingSvc := services.NewBuildingService(buildingRepo, unitRepo)
	unitSvc := services.NewUnitService(unitRepo, buildingRepo)
	contractSvc := services.NewContractService(contractRepo, unitRepo, buildingRepo, partnerRepo)
	prepaymentSvc := services.NewPrepaymentService(prepaymentRepo, consumptionRepo, contractRepo)
	allocationSvc := services.NewAllocationService(prepaymentRepo, consumptionRepo, invoiceRepo, cfg.AdvanceAccountCode)
	billingSvc := services.NewBillingService(
		buildingRepo, contractRepo, unitRepo, invoiceRepo, activityRepo, userRepo,
		allocationSvc, notifier, cfg.IncomeAccountCode, cfg.FallbackTimeZone,
	)
	reminderSvc := services.NewReminderService(
		buildingRepo, contractRepo, prepaymentRepo, activityRepo, userRepo,
		notifier, cfg.FallbackTimeZone,
	)
	revenueSvc := services.NewRevenueService(buildingRepo, contractRepo)
	utilitySvc := services.NewUtilityService(utilityRepo, contractRepo, invoiceRepo)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(
			context.Background(),
			userRepo, partnerRepo, buildingSvc, unitRepo, contractSvc, prepaymentSvc,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	healthController := controllers.NewHealthController(application)
	buildingsController := controllers.NewBuildingsController(buildingSvc, revenueSvc)
	unitsController := controllers.NewUnitsController(unitSvc)
	contractsController := controllers.NewContractsController(contractSvc)
	prepaymentsController := controllers.NewPrepaymentsController(prepaymentSvc)
	billingController := controllers.NewBillingController(billingSvc, reminderSvc, contractRepo, invoiceRepo)
	utilitiesController := controllers.NewUtilitiesController(utilitySvc)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Buildings, buildingsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Buildings, buildingsController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Building, buildingsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Building, buildingsController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.Building, buildingsController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.BuildingRevenue, buildingsController.RevenueHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Units, unitsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.BuildingUnits, unitsController.ListByBuildingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Unit, unitsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitOwner, unitsController.SetOwnerHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Unit, unitsController.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Contracts, contractsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Contract, contractsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Contract, contractsController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.BuildingContracts, contractsController.ListByBuildingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ContractActivate, contractsController.ActivateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractCancel, contractsController.CancelHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractExpire, contractsController.ExpireHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Prepayments, prepaymentsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Prepayment, prepaymentsController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ContractPrepayments, prepaymentsController.ListByContractHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ContractPrepaymentBalance, prepaymentsController.BalanceHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.BillingRun, billingController.RunHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.BillingRemind, billingController.RemindHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractInvoices, billingController.ListContractInvoicesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Invoice, billingController.GetInvoiceHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.UtilityTypes, utilitiesController.CreateTypeHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UtilityTypes, utilitiesController.ListTypesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UtilityExpenses, utilitiesController.CreateExpenseHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UtilityExpenseBill, utilitiesController.BillExpenseHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractUtilities, utilitiesController.ListByContractHandler).Methods(http.MethodGet)

	// One daily pass runs, chosen by flag: either invoice-and-consume or
	// remind-only.
	c := cron.New()
	var dailyErr error
	if cfg.LDFlag_ConsumePrepayments {
		_, dailyErr = c.AddFunc(constants.DailyPassCronSpec, func() {
			billingSvc.RunDailyPass(context.Background(), time.Now())
		})
	} else {
		_, dailyErr = c.AddFunc(constants.DailyPassCronSpec, func() {
			reminderSvc.RunDailyPass(context.Background(), time.Now())
		})
	}
	if dailyErr != nil {
		utils.Logger.WithError(dailyErr).Fatal("Failed to schedule daily pass cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("rental-service failed to start:", err)
	}
}
