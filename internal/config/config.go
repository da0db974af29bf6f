package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Survey bonus retention policies. "retain" leaves the eligibility flag set
// after it is applied, "clear_on_use" consumes it at the first booking it
// discounts.
const (
	SurveyBonusRetain     = "retain"
	SurveyBonusClearOnUse = "clear_on_use"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string
	HTTPPort string

	TelegramToken string
	AdminChatID   int64

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Booking window and slot grid.
	OpenHour          int
	CloseHour         int
	SlotInterval      time.Duration
	LeadTime          time.Duration
	BookingDays       int
	SessionTTL        time.Duration
	WorkerCount       int
	SurveyBonusPolicy string

	// Discount defaults used when the settings row is absent.
	DefaultVisitThreshold   int
	DefaultVisitDiscountPct float64
	SurveyDiscountPct       float64
	DiscountCapPct          float64

	ReminderPollInterval time.Duration
	CleanupSchedule      string

	AdminJWTSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:   getEnvAsInt64("ADMIN_CHAT_ID", 0),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		OpenHour:          getEnvAsInt("SHOP_OPEN_HOUR", 9),
		CloseHour:         getEnvAsInt("SHOP_CLOSE_HOUR", 17),
		SlotInterval:      getEnvAsDuration("SLOT_INTERVAL", 30*time.Minute),
		LeadTime:          getEnvAsDuration("BOOKING_LEAD_TIME", 2*time.Hour),
		BookingDays:       getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		WorkerCount:       getEnvAsInt("WORKER_COUNT", 4),
		SurveyBonusPolicy: normalizePolicy(getEnv("SURVEY_BONUS_POLICY", SurveyBonusRetain)),

		DefaultVisitThreshold:   getEnvAsInt("DEFAULT_VISIT_THRESHOLD", 6),
		DefaultVisitDiscountPct: getEnvAsFloat("DEFAULT_VISIT_DISCOUNT_PCT", 15.0),
		SurveyDiscountPct:       getEnvAsFloat("SURVEY_DISCOUNT_PCT", 10.0),
		DiscountCapPct:          getEnvAsFloat("DISCOUNT_CAP_PCT", 100.0),

		ReminderPollInterval: getEnvAsDuration("REMINDER_POLL_INTERVAL", time.Minute),
		CleanupSchedule:      getEnv("CLEANUP_SCHEDULE", "0 3 * * *"),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}
}

func normalizePolicy(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case SurveyBonusClearOnUse:
		return SurveyBonusClearOnUse
	default:
		return SurveyBonusRetain
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
