package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// RotationScheduleParser parses six-field cron expressions (with seconds).
var RotationScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	DynamoDBEndpoint string
	EventBusName     string
	MetricsNamespace string

	// Tables
	DefinitionsTable        string
	DefinitionOfTheDayTable string
	ProjectsTable           string
	IDIndexName             string

	// Scheduling
	RotationSchedule string
	EnableScheduler  bool

	// Access keys checked by the local server
	FunctionKey string
	AdminKey    string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics      bool
	EnableTracing      bool
	EnableCORS         bool
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("EVENT_BUS_NAME", "")
	v.SetDefault("METRICS_NAMESPACE", "CloudDictionary")
	v.SetDefault("DICTIONARY_DEFINITIONS_TABLE", "definitions")
	v.SetDefault("DICTIONARY_DEFINITION_OF_THE_DAY_TABLE", "definition-of-the-day")
	v.SetDefault("DICTIONARY_PROJECTS_TABLE", "projects")
	v.SetDefault("DICTIONARY_ID_INDEX", "IdIndex")
	v.SetDefault("ROTATION_SCHEDULE", "0 0 0 * * *") // daily at midnight
	v.SetDefault("ENABLE_SCHEDULER", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENABLE_METRICS", false)
	v.SetDefault("ENABLE_TRACING", false)
	v.SetDefault("ENABLE_CORS", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := &Config{
		ServerAddress:           v.GetString("SERVER_ADDRESS"),
		Environment:             v.GetString("ENVIRONMENT"),
		AWSRegion:               v.GetString("AWS_REGION"),
		DynamoDBEndpoint:        v.GetString("DYNAMODB_ENDPOINT"),
		EventBusName:            v.GetString("EVENT_BUS_NAME"),
		MetricsNamespace:        v.GetString("METRICS_NAMESPACE"),
		DefinitionsTable:        v.GetString("DICTIONARY_DEFINITIONS_TABLE"),
		DefinitionOfTheDayTable: v.GetString("DICTIONARY_DEFINITION_OF_THE_DAY_TABLE"),
		ProjectsTable:           v.GetString("DICTIONARY_PROJECTS_TABLE"),
		IDIndexName:             v.GetString("DICTIONARY_ID_INDEX"),
		RotationSchedule:        v.GetString("ROTATION_SCHEDULE"),
		EnableScheduler:         v.GetBool("ENABLE_SCHEDULER"),
		FunctionKey:             v.GetString("FUNCTION_KEY"),
		AdminKey:                v.GetString("ADMIN_KEY"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		EnableMetrics:           v.GetBool("ENABLE_METRICS"),
		EnableTracing:           v.GetBool("ENABLE_TRACING"),
		EnableCORS:              v.GetBool("ENABLE_CORS"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DefinitionsTable == "" {
		return fmt.Errorf("DICTIONARY_DEFINITIONS_TABLE is required")
	}
	if c.DefinitionOfTheDayTable == "" {
		return fmt.Errorf("DICTIONARY_DEFINITION_OF_THE_DAY_TABLE is required")
	}
	if c.ProjectsTable == "" {
		return fmt.Errorf("DICTIONARY_PROJECTS_TABLE is required")
	}
	if c.IDIndexName == "" {
		return fmt.Errorf("DICTIONARY_ID_INDEX is required")
	}
	if _, err := RotationScheduleParser.Parse(c.RotationSchedule); err != nil {
		return fmt.Errorf("ROTATION_SCHEDULE is invalid: %w", err)
	}
	if c.IsProduction() && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
