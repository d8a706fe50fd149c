package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.APIBaseURL)
	assert.Equal(t, cfg.Backend.APIBaseURL, cfg.Backend.AuthBaseURL, "auth usa la URL de la API si no se define")
	assert.Equal(t, 10, cfg.Stock.LowStockThreshold)
	assert.Equal(t, 5, cfg.Stock.BatchLowQtyThreshold)
	assert.Equal(t, 7, cfg.Stock.ExpiringSoonDays)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, 10*time.Second, cfg.Chat.Timeout())
}

func TestFromViper_SobrescribeDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("RESTOCKER_API_BASE_URL", "https://api.restocker.test/")
	v.Set("RESTOCKER_AUTH_BASE_URL", "https://auth.restocker.test")
	v.Set("STOCK_LOW_THRESHOLD", "20")
	v.Set("STOCK_EXPIRING_SOON_DAYS", 3)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.restocker.test", cfg.Backend.APIBaseURL, "se recorta la barra final")
	assert.Equal(t, "https://auth.restocker.test", cfg.Backend.AuthBaseURL)
	assert.Equal(t, 20, cfg.Stock.LowStockThreshold)
	assert.Equal(t, 3, cfg.Stock.ExpiringSoonDays)
}

func TestFromViper_UmbralNegativo_RetornaError(t *testing.T) {
	v := viper.New()
	v.Set("STOCK_BATCH_LOW_THRESHOLD", -1)

	_, err := fromViper(v)
	assert.Error(t, err)
}
