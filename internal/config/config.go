package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/rental-service/internal/constants"
	"github.com/poofware/rental-service/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Notifications
	SendGridAPIKey   string
	TwilioAccountSID string
	TwilioAuthToken  string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// Accounting
	IncomeAccountCode  string
	AdvanceAccountCode string

	// Buildings with no resolvable timezone bill against this zone.
	FallbackTimeZone string

	// LaunchDarkly flags
	LDFlag_ConsumePrepayments  bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_TwilioFromPhone     string
	LDFlag_SendgridFromEmail   string
	LDFlag_CORSHighSecurity    bool
}

const LDConnectionTimeout = 5 * time.Second

func LoadConfig() *Config {
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	cfg := &Config{
		AppName:            constants.AppName,
		AppPort:            appPort,
		AppUrl:             appUrl,
		DBUrl:              dbURL,
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		RSAPublicKey:       pubKey,
		IncomeAccountCode:  envOr("INCOME_ACCOUNT_CODE", constants.DefaultIncomeAccountCode),
		AdvanceAccountCode: envOr("ADVANCE_ACCOUNT_CODE", constants.DefaultAdvanceAccountCode),
		FallbackTimeZone:   os.Getenv("FALLBACK_TIMEZONE"),

		// Flag defaults when LaunchDarkly is not configured: the billing
		// pass consumes prepayments, nothing is seeded.
		LDFlag_ConsumePrepayments: true,
		LDFlag_TwilioFromPhone:    "+10005550006",
		LDFlag_SendgridFromEmail:  "no-reply@rental-service.local",
	}

	loadFlags(cfg)
	return cfg
}

// loadFlags overlays LaunchDarkly flag values when LD_SDK_KEY is set.
func loadFlags(cfg *Config) {
	sdkKey := os.Getenv("LD_SDK_KEY")
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set, using flag defaults")
		return
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind("service", cfg.AppName)

	consumeFlag, err := ldClient.BoolVariation("billing_consume_prepayments", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving billing_consume_prepayments flag")
	}
	utils.Logger.Debugf("billing_consume_prepayments flag: %t", consumeFlag)
	cfg.LDFlag_ConsumePrepayments = consumeFlag

	seedFlag, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_db_with_test_data flag")
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seedFlag)
	cfg.LDFlag_SeedDbWithTestData = seedFlag

	twilioFromFlag, err := ldClient.StringVariation("twilio_from_phone", ctx, cfg.LDFlag_TwilioFromPhone)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving twilio_from_phone flag")
	}
	cfg.LDFlag_TwilioFromPhone = twilioFromFlag

	sgFromFlag, err := ldClient.StringVariation("sendgrid_from_email", ctx, cfg.LDFlag_SendgridFromEmail)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_from_email flag")
	}
	cfg.LDFlag_SendgridFromEmail = sgFromFlag

	corsFlag, err := ldClient.BoolVariation("cors_high_security", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsFlag)
	cfg.LDFlag_CORSHighSecurity = corsFlag
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) Close() {}
