package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://reports.example.org/api/v1/")
	t.Setenv("SUBMIT_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("ACCESS_CODE_HASHES", " a , ,b ")

	cfg := Load()

	assert.Equal(t, "https://reports.example.org/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, []string{"a", "b"}, cfg.AccessCodeHashes)
	assert.Equal(t, "/tests", cfg.ExitRedirectURL)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "wizard:abc:state", CacheKey.WizardStateKey("abc"))
	assert.Equal(t, "wizard:abc:submitting", CacheKey.WizardSubmitLockKey("abc"))
}
