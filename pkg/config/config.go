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
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Drafts   DraftConfig
	Log      LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	DocsPath string // swagger.json; si no existe no se monta /docs
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

// UpstreamConfig servidor de inventario al que se delegan lecturas y escrituras.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout duración máxima de cada petición al servidor.
func (c UpstreamConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DraftConfig almacenamiento de borradores de órdenes de compra.
type DraftConfig struct {
	Store      string // memory | redis
	RedisURL   string // redis://host:6379/0
	TTLMinutes int
}

// TTL vigencia de un borrador sin actividad.
func (c DraftConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, UPSTREAM_BASE_URL, DRAFT_STORE, etc.
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

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-compras"),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Upstream: UpstreamConfig{
			BaseURL:        strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", "http://localhost:8080"), "/"),
			TimeoutSeconds: getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 15),
		},
		Drafts: DraftConfig{
			Store:      strings.ToLower(getString(v, "DRAFT_STORE", "memory")),
			RedisURL:   getString(v, "REDIS_URL", "redis://localhost:6379/0"),
			TTLMinutes: getInt(v, "DRAFT_TTL_MINUTES", 120),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("config: UPSTREAM_BASE_URL vacío")
	}
	switch cfg.Drafts.Store {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("config: DRAFT_STORE %q no soportado (memory|redis)", cfg.Drafts.Store)
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
			n, err := strconv.Atoi(v.GetString(key))
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
