package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Stock   StockConfig
	Chat    ChatConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string // trace, debug, info, warn, error
	SwaggerFile string // vacío = sin /docs
}

// JWTConfig configuración del token de sesión que emite el dashboard.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig ubicación del backend REST de Restocker.
// AuthBaseURL puede diferir de APIBaseURL cuando auth vive en otro host.
type BackendConfig struct {
	APIBaseURL     string
	AuthBaseURL    string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red del cliente HTTP hacia el backend.
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StockConfig umbrales de clasificación de stock.
type StockConfig struct {
	LowStockThreshold    int // total por producto <= umbral → Low Stock
	BatchLowQtyThreshold int // cantidad por lote <= umbral → Low Qty
	ExpiringSoonDays     int // ventana de "por vencer" en días
}

// ChatConfig opciones del asistente de chat.
type ChatConfig struct {
	TimeoutSeconds int
}

// Timeout devuelve el timeout aplicado a cada mensaje de chat.
func (c ChatConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, RESTOCKER_API_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	apiBase := strings.TrimRight(getString(v, "RESTOCKER_API_BASE_URL", "http://localhost:5000"), "/")
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "restocker-dashboard"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 1440),
			Issuer:     getString(v, "JWT_ISSUER", "restocker-dashboard"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			APIBaseURL:     apiBase,
			AuthBaseURL:    strings.TrimRight(getString(v, "RESTOCKER_AUTH_BASE_URL", apiBase), "/"),
			TimeoutSeconds: getInt(v, "RESTOCKER_API_TIMEOUT_SECONDS", 15),
		},
		Stock: StockConfig{
			LowStockThreshold:    getInt(v, "STOCK_LOW_THRESHOLD", 10),
			BatchLowQtyThreshold: getInt(v, "STOCK_BATCH_LOW_THRESHOLD", 5),
			ExpiringSoonDays:     getInt(v, "STOCK_EXPIRING_SOON_DAYS", 7),
		},
		Chat: ChatConfig{
			TimeoutSeconds: getInt(v, "CHAT_TIMEOUT_SECONDS", 10),
		},
	}

	if cfg.Stock.LowStockThreshold < 0 || cfg.Stock.BatchLowQtyThreshold < 0 || cfg.Stock.ExpiringSoonDays < 0 {
		return nil, fmt.Errorf("config: los umbrales de stock no pueden ser negativos")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
