package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/amortization"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string
	RatesURL string

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
	ReminderEmail string

	ReminderSchedule string
	ReminderLeadDays int

	LoanTerms amortization.Terms
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=homeledger sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		RatesURL:         getEnv("RATES_URL", "https://data-api.ecb.europa.eu/service/data/FM/B.U2.EUR.4F.KR.MRR_FB.LEV?lastNObservations=1&detail=dataonly"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", ""),
		ReminderEmail:    getEnv("REMINDER_EMAIL", ""),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 8 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}

	leadDays, err := strconv.Atoi(getEnv("REMINDER_LEAD_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_LEAD_DAYS: %w", err)
	}
	cfg.ReminderLeadDays = leadDays

	terms, err := loadLoanTerms()
	if err != nil {
		return nil, err
	}
	cfg.LoanTerms = terms

	return cfg, nil
}

// loadLoanTerms reads the fixed loan parameters from the environment
func loadLoanTerms() (amortization.Terms, error) {
	var terms amortization.Terms

	principal, err := decimal.NewFromString(getEnv("LOAN_PRINCIPAL", "22000"))
	if err != nil {
		return terms, fmt.Errorf("invalid LOAN_PRINCIPAL: %w", err)
	}
	rate, err := decimal.NewFromString(getEnv("LOAN_ANNUAL_RATE", "0.05"))
	if err != nil {
		return terms, fmt.Errorf("invalid LOAN_ANNUAL_RATE: %w", err)
	}
	payment, err := decimal.NewFromString(getEnv("LOAN_PAYMENT", "275"))
	if err != nil {
		return terms, fmt.Errorf("invalid LOAN_PAYMENT: %w", err)
	}
	startDate, err := time.Parse("2006-01-02", getEnv("LOAN_START_DATE", "2024-01-05"))
	if err != nil {
		return terms, fmt.Errorf("invalid LOAN_START_DATE: %w", err)
	}
	periodDays, err := strconv.Atoi(getEnv("LOAN_PERIOD_DAYS", "14"))
	if err != nil {
		return terms, fmt.Errorf("invalid LOAN_PERIOD_DAYS: %w", err)
	}
	if periodDays <= 0 {
		return terms, fmt.Errorf("LOAN_PERIOD_DAYS must be positive, got %d", periodDays)
	}

	terms = amortization.Terms{
		Principal:     principal,
		AnnualRate:    rate,
		PaymentAmount: payment,
		PeriodDays:    periodDays,
		StartDate:     startDate,
	}
	return terms, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
