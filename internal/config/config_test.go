package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("ASKBOX_TEST_STRING", "value")
	t.Setenv("ASKBOX_TEST_BOOL", "true")
	t.Setenv("ASKBOX_TEST_BAD_BOOL", "maybe")
	t.Setenv("ASKBOX_TEST_INT", "42")
	t.Setenv("ASKBOX_TEST_BAD_INT", "-3")
	t.Setenv("ASKBOX_TEST_DURATION", "90s")
	t.Setenv("ASKBOX_TEST_BAD_DURATION", "soon")
	t.Setenv("ASKBOX_TEST_LIST", " https://a.test, ,https://b.test ")

	assert.Equal(t, "value", envString("ASKBOX_TEST_STRING", "def"))
	assert.Equal(t, "def", envString("ASKBOX_TEST_UNSET", "def"))

	assert.True(t, envBool("ASKBOX_TEST_BOOL", false))
	assert.True(t, envBool("ASKBOX_TEST_BAD_BOOL", true))
	assert.False(t, envBool("ASKBOX_TEST_UNSET", false))

	assert.Equal(t, 42, envInt("ASKBOX_TEST_INT", 1))
	assert.Equal(t, 1, envInt("ASKBOX_TEST_BAD_INT", 1))
	assert.Equal(t, 1, envInt("ASKBOX_TEST_UNSET", 1))

	assert.Equal(t, 90*time.Second, envDuration("ASKBOX_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, envDuration("ASKBOX_TEST_BAD_DURATION", time.Second))

	assert.Equal(t, []string{"https://a.test", "https://b.test"}, envList("ASKBOX_TEST_LIST"))
	assert.Nil(t, envList("ASKBOX_TEST_UNSET"))
}

func TestMissingForProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	assert.Equal(t, []string{"RESEND_API_KEY", "CLERK_JWT_KEY", "CLERK_WEBHOOK_SECRET"}, cfg.missingForProduction())

	cfg.ResendAPIKey = "re_x"
	cfg.ClerkJWTKey = "pem"
	cfg.ClerkWebhookSecret = "whsec_x"
	assert.Empty(t, cfg.missingForProduction())
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:            "Askbox",
		AppEnv:             "production",
		DBConnection:       "postgres://user:pass@db/askbox",
		ClerkJWTKey:        "pem",
		ClerkWebhookSecret: "whsec_x",
		ResendAPIKey:       "re_x",
		SentryDSN:          "https://key@sentry.test/1",
	}

	s := cfg.Sanitized()
	assert.Equal(t, "Askbox", s.AppName)
	assert.True(t, s.IsProduction())
	assert.Empty(t, s.DBConnection)
	assert.Empty(t, s.ClerkJWTKey)
	assert.Empty(t, s.ClerkWebhookSecret)
	assert.Empty(t, s.ResendAPIKey)
	assert.Empty(t, s.SentryDSN)
}
