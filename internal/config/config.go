package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Report ReportConfig
	Email  EmailConfig
	Weekly WeeklyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// ReportConfig holds the default report generation settings used by
// the scheduled weekly run (API requests carry their own options)
type ReportConfig struct {
	WorkbookPath      string
	OutputPath        string // Optional, empty means "beside the workbook"
	SheetName         string
	SkipRows          int
	PriorityColumn    string
	PageLength        int
	SortDescending    bool
	AlphabetizeOthers bool
	PreferredOrder    []string
	OnLeave           []string
	KeptStates        []string
}

// EmailConfig holds SendGrid email configuration
type EmailConfig struct {
	APIKey     string
	FromEmail  string
	Recipients []string
}

// WeeklyConfig holds the cron schedule for the weekly report run
type WeeklyConfig struct {
	Enabled  bool
	Schedule string // cron expression with seconds
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8086"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Report: ReportConfig{
			WorkbookPath:      getEnv("FOLLOWUP_WORKBOOK", ""),
			OutputPath:        getEnv("FOLLOWUP_OUTPUT", ""),
			SheetName:         getEnv("FOLLOWUP_SHEET", "Suivi Actions"),
			SkipRows:          getEnvInt("FOLLOWUP_SKIP_ROWS", 10),
			PriorityColumn:    getEnv("FOLLOWUP_PRIORITY_COLUMN", "Priorité"),
			PageLength:        getEnvInt("FOLLOWUP_PAGE_LENGTH", 25),
			SortDescending:    getEnvBool("FOLLOWUP_SORT_DESCENDING", false),
			AlphabetizeOthers: getEnvBool("FOLLOWUP_ALPHABETIZE_OTHERS", false),
			PreferredOrder:    getEnvList("FOLLOWUP_PREFERRED_ORDER"),
			OnLeave:           getEnvList("FOLLOWUP_ON_LEAVE"),
			KeptStates:        getEnvList("FOLLOWUP_KEPT_STATES"),
		},
		Email: EmailConfig{
			APIKey:     getEnv("SENDGRID_API_KEY", ""),
			FromEmail:  getEnv("SENDGRID_FROM_EMAIL", ""),
			Recipients: getEnvList("REPORT_RECIPIENTS"),
		},
		Weekly: WeeklyConfig{
			Enabled:  getEnvBool("WEEKLY_REPORT_ENABLED", false),
			Schedule: getEnv("WEEKLY_REPORT_SCHEDULE", "0 0 7 * * 1"), // Monday 07:00:00
		},
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	// The weekly scheduled run needs a workbook to read from
	if config.Weekly.Enabled && config.Report.WorkbookPath == "" {
		return fmt.Errorf("FOLLOWUP_WORKBOOK is required when WEEKLY_REPORT_ENABLED is set")
	}
	// Email delivery needs both a sender and at least one recipient
	if config.Email.APIKey != "" {
		if config.Email.FromEmail == "" {
			return fmt.Errorf("SENDGRID_FROM_EMAIL is required when SENDGRID_API_KEY is set")
		}
		if config.Weekly.Enabled && len(config.Email.Recipients) == 0 {
			return fmt.Errorf("REPORT_RECIPIENTS is required when WEEKLY_REPORT_ENABLED is set and email is configured")
		}
	}
	return nil
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
