package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 9, cfg.OpenHour)
	assert.Equal(t, 17, cfg.CloseHour)
	assert.Equal(t, 30*time.Minute, cfg.SlotInterval)
	assert.Equal(t, 2*time.Hour, cfg.LeadTime)
	assert.Equal(t, 14, cfg.BookingDays)
	assert.Equal(t, 6, cfg.DefaultVisitThreshold)
	assert.Equal(t, 15.0, cfg.DefaultVisitDiscountPct)
	assert.Equal(t, 10.0, cfg.SurveyDiscountPct)
	assert.Equal(t, SurveyBonusRetain, cfg.SurveyBonusPolicy)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOP_OPEN_HOUR", "10")
	t.Setenv("BOOKING_LEAD_TIME", "1h")
	t.Setenv("ADMIN_CHAT_ID", "123456789")
	t.Setenv("SURVEY_BONUS_POLICY", "clear_on_use")
	t.Setenv("REDIS_TLS", "true")

	cfg := Load()

	assert.Equal(t, 10, cfg.OpenHour)
	assert.Equal(t, time.Hour, cfg.LeadTime)
	assert.Equal(t, int64(123456789), cfg.AdminChatID)
	assert.Equal(t, SurveyBonusClearOnUse, cfg.SurveyBonusPolicy)
	assert.True(t, cfg.RedisTLS)
}

func TestNormalizePolicy(t *testing.T) {
	assert.Equal(t, SurveyBonusClearOnUse, normalizePolicy(" Clear_On_Use "))
	assert.Equal(t, SurveyBonusRetain, normalizePolicy("retain"))
	assert.Equal(t, SurveyBonusRetain, normalizePolicy("bogus"))
}
