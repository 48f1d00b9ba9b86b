package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlaceholder(t *testing.T) {
	cases := map[string]bool{
		"":                                  true,
		"   ":                               true,
		"your-project-id":                   true,
		"YOUR_API_KEY":                      true,
		"<postgres dsn>":                    true,
		"changeme":                          true,
		"placeholder":                       true,
		"sk-xxxxxxxx":                       true,
		"postgres://hr:s3cret@db:5432/hris": false,
		"hris-documents":                    false,
	}
	for val, want := range cases {
		assert.Equal(t, want, IsPlaceholder(val), "value %q", val)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("BACKEND_PROBE_TIMEOUT_SECONDS", "")
	t.Setenv("BACKEND_REPROBE_INTERVAL_SECONDS", "")
	t.Setenv("INVITE_TOKEN_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "live", cfg.Backend.Preferred)
	assert.False(t, cfg.Postgres.Configured())
	assert.Equal(t, 2*time.Second, cfg.Backend.ProbeTimeout())
	assert.Equal(t, 30*time.Second, cfg.Backend.ReprobeInterval())
	assert.Equal(t, 72*time.Hour, cfg.Invite.InviteTTL())
}

func TestLoadBackendSelection(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://hr:s3cret@db:5432/hris")
	t.Setenv("DATA_BACKEND", "MOCK")
	t.Setenv("BACKEND_REPROBE_INTERVAL_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Postgres.Configured())
	assert.Equal(t, "mock", cfg.Backend.Preferred)
	assert.Zero(t, cfg.Backend.ReprobeInterval())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DATA_BACKEND", "firestore")

	_, err := Load()
	assert.Error(t, err)
}

func TestMailAndStorageConfigured(t *testing.T) {
	assert.False(t, MailConfig{APIURL: "https://api.mail.test/send", APIKey: "your-api-key"}.Configured())
	assert.True(t, MailConfig{APIURL: "https://api.mail.test/send", APIKey: "re_live_123"}.Configured())
	assert.False(t, StorageConfig{}.Configured())
	assert.True(t, StorageConfig{Bucket: "hris-documents"}.Configured())
}
