package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the journey service
type Config struct {
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Logging   LoggingConfig
	Service   ServiceConfig
	Journey   JourneyConfig
	Email     EmailConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Scheduler SchedulerConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogSQL   bool
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	GroupID       string
	CommandsTopic string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name     string
	Port     string
	GRPCPort string
}

// JourneyConfig holds weekly schedule configuration
type JourneyConfig struct {
	// StartDate anchors week 1 when a state has no became_current_at stamp. It must be the
	// Sunday before week 1 so that Monday counts as day 1.
	StartDate             time.Time
	Timezone              string
	Location              *time.Location
	MinTransitionInterval time.Duration
	EmailTimeout          time.Duration
}

// EmailConfig holds Resend API configuration
type EmailConfig struct {
	APIKey      string
	BaseURL     string
	FromEmail   string
	FromName    string
	SiteURL     string
	Timeout     time.Duration
	MaxRetries  int
	Concurrency int
}

// RedisConfig holds published-beer cache configuration. Empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AuthConfig holds bearer secrets for protected routes
type AuthConfig struct {
	CronSecret  string
	AdminSecret string
}

// SchedulerConfig holds in-process cron configuration
type SchedulerConfig struct {
	Enabled        bool
	TransitionSpec string
	PublishSpec    string
	DigestSpec     string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config          *Config
	DatabaseConfig  *DatabaseConfig
	KafkaConfig     *KafkaConfig
	LoggingConfig   *LoggingConfig
	ServiceConfig   *ServiceConfig
	JourneyConfig   *JourneyConfig
	EmailConfig     *EmailConfig
	RedisConfig     *RedisConfig
	AuthConfig      *AuthConfig
	SchedulerConfig *SchedulerConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:          cfg,
		DatabaseConfig:  &cfg.Database,
		KafkaConfig:     &cfg.Kafka,
		LoggingConfig:   &cfg.Logging,
		ServiceConfig:   &cfg.Service,
		JourneyConfig:   &cfg.Journey,
		EmailConfig:     &cfg.Email,
		RedisConfig:     &cfg.Redis,
		AuthConfig:      &cfg.Auth,
		SchedulerConfig: &cfg.Scheduler,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	timezone := getEnv("JOURNEY_TIMEZONE", "America/New_York")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid JOURNEY_TIMEZONE: %w", err)
	}

	var startDate time.Time
	if raw := getEnv("JOURNEY_START_DATE", ""); raw != "" {
		startDate, err = time.ParseInLocation("2006-01-02", raw, location)
		if err != nil {
			return nil, fmt.Errorf("invalid JOURNEY_START_DATE: %w", err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "brewquest_user"),
			Password: getEnv("DATABASE_PASSWORD", "brewquest_pass"),
			DBName:   getEnv("DATABASE_NAME", "brewquest_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			LogSQL:   getEnvBool("DATABASE_LOG_SQL", false),
		},
		Kafka: KafkaConfig{
			Enabled:       getEnvBool("KAFKA_ENABLED", false),
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
			GroupID:       getEnv("KAFKA_GROUP_ID", "journey-service-group"),
			CommandsTopic: getEnv("KAFKA_COMMANDS_TOPIC", "journey.commands"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Service: ServiceConfig{
			Name:     getEnv("SERVICE_NAME", "journey-service"),
			Port:     getEnv("SERVICE_PORT", "8080"),
			GRPCPort: getEnv("GRPC_PORT", "9090"),
		},
		Journey: JourneyConfig{
			StartDate:             startDate,
			Timezone:              timezone,
			Location:              location,
			MinTransitionInterval: getEnvDuration("TRANSITION_MIN_INTERVAL", 144*time.Hour),
			EmailTimeout:          getEnvDuration("EMAIL_TIMEOUT", 30*time.Second),
		},
		Email: EmailConfig{
			APIKey:      getEnv("RESEND_API_KEY", ""),
			BaseURL:     getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			FromEmail:   getEnv("EMAIL_FROM", "journey@brewquestchronicles.com"),
			FromName:    getEnv("EMAIL_FROM_NAME", "BrewQuest Chronicles"),
			SiteURL:     strings.TrimRight(getEnv("SITE_URL", "https://brewquestchronicles.com"), "/"),
			Timeout:     getEnvDuration("EMAIL_REQUEST_TIMEOUT", 10*time.Second),
			MaxRetries:  getEnvInt("EMAIL_MAX_RETRIES", 3),
			Concurrency: getEnvInt("EMAIL_CONCURRENCY", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			CronSecret:  getEnv("CRON_SECRET", ""),
			AdminSecret: getEnv("ADMIN_SECRET", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:        getEnvBool("SCHEDULER_ENABLED", false),
			TransitionSpec: getEnv("SCHEDULER_TRANSITION_SPEC", "0 20 * * 0"),
			PublishSpec:    getEnv("SCHEDULER_PUBLISH_SPEC", "5 0 * * *"),
			DigestSpec:     getEnv("SCHEDULER_DIGEST_SPEC", "0 9 * * 5"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	if !c.Journey.StartDate.IsZero() && c.Journey.StartDate.Weekday() != time.Sunday {
		return fmt.Errorf("JOURNEY_START_DATE must be a Sunday, got %s", c.Journey.StartDate.Weekday())
	}

	if c.Auth.CronSecret == "" {
		return fmt.Errorf("CRON_SECRET is required")
	}

	if c.Journey.MinTransitionInterval < 0 {
		return fmt.Errorf("TRANSITION_MIN_INTERVAL must not be negative")
	}

	if c.Email.Concurrency < 1 {
		return fmt.Errorf("EMAIL_CONCURRENCY must be at least 1")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
