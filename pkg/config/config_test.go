package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "South Lanka Fireworks", cfg.Brand.Title)
	assert.Equal(t, "Thank you for choosing South Lanka Fireworks!", cfg.Brand.FooterMessage)
	assert.Equal(t, 1000, cfg.History.Limit)
	assert.Equal(t, "slf-quotation-history", cfg.History.StorageKey)
	assert.Equal(t, 10*time.Second, cfg.Images.FetchTimeout)
	assert.Equal(t, 320, cfg.Images.SquareSide)
	assert.True(t, cfg.App.IsDev())
}

func TestBankDetailsOrder(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	details := cfg.Bank.Details()
	require.Len(t, details, 4)
	assert.Equal(t, "Acc No", details[0].Label)
	assert.Equal(t, "8011371317", details[0].Value)
	assert.Equal(t, "Bank Name", details[1].Label)
	assert.Equal(t, "Branch", details[2].Label)
	assert.Equal(t, "Acc Holder Name", details[3].Label)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SLF_HISTORY_LIMIT", "25")
	t.Setenv("SLF_APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.History.Limit)
	assert.True(t, cfg.App.IsProd())
}
