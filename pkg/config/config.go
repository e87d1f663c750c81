package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PostingAccountCodes holds the chart codes of the fixed accounts used by the
// document posting workflows. All five must resolve to existing accounts
// before the server starts accepting requests.
type PostingAccountCodes struct {
	Receivable   string
	Payable      string
	CashBank     string
	SalesRevenue string
	Expense      string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is in ulule/limiter format, e.g. "100-M" for 100 req/minute.
	RateLimit string

	// CORSAllowedOrigins is a comma separated list; "*" allows all origins.
	CORSAllowedOrigins []string

	PostingAccounts PostingAccountCodes
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RECEIVABLE_ACCOUNT_CODE", "1000")
	viper.SetDefault("CASH_BANK_ACCOUNT_CODE", "1200")
	viper.SetDefault("PAYABLE_ACCOUNT_CODE", "2000")
	viper.SetDefault("SALES_REVENUE_ACCOUNT_CODE", "4000")
	viper.SetDefault("EXPENSE_ACCOUNT_CODE", "5000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	cfg.PostingAccounts = PostingAccountCodes{
		Receivable:   viper.GetString("RECEIVABLE_ACCOUNT_CODE"),
		Payable:      viper.GetString("PAYABLE_ACCOUNT_CODE"),
		CashBank:     viper.GetString("CASH_BANK_ACCOUNT_CODE"),
		SalesRevenue: viper.GetString("SALES_REVENUE_ACCOUNT_CODE"),
		Expense:      viper.GetString("EXPENSE_ACCOUNT_CODE"),
	}

	return cfg, nil
}
