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
	Log     LogConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Meta    MetaConfig
	Reports ReportsConfig
	Seed    SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
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

// SessionConfig firma y vigencia del token de sesión.
type SessionConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MetaConfig acceso a la Graph API de Meta. Token vacío = gateway deshabilitado.
type MetaConfig struct {
	Token          string
	BaseURL        string
	PhoneID        string
	TimeoutSeconds int
	// DeliverMessages envía por WhatsApp los mensajes salientes del inbox.
	DeliverMessages bool
}

// Timeout timeout HTTP de las llamadas al gateway.
func (c MetaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReportsConfig destino de los reportes exportados.
type ReportsConfig struct {
	Dir         string
	CompanyName string
}

// SeedConfig contraseñas de los usuarios semilla.
type SeedConfig struct {
	AdminPassword string
	SalesPassword string
}

// DevSessionSecret secreto usado si SESSION_SECRET no está definido.
const DevSessionSecret = "crm-dev-secret-change-me"

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SESSION_SECRET, META_API_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "crm-api"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", DevSessionSecret),
			Expiration: getInt(v, "SESSION_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "SESSION_ISSUER", "crm-api"),
		},
		Meta: MetaConfig{
			Token:           getString(v, "META_API_TOKEN", ""),
			BaseURL:         getString(v, "META_API_BASE_URL", "https://graph.facebook.com/v18.0"),
			PhoneID:         getString(v, "META_WHATSAPP_PHONE_ID", ""),
			TimeoutSeconds:  getInt(v, "META_TIMEOUT_SECONDS", 15),
			DeliverMessages: getBool(v, "META_DELIVER_MESSAGES", false),
		},
		Reports: ReportsConfig{
			Dir:         getString(v, "REPORTS_DIR", "reports"),
			CompanyName: getString(v, "REPORTS_COMPANY_NAME", "Monteiro Corretora"),
		},
		Seed: SeedConfig{
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "admin123"),
			SalesPassword: getString(v, "SEED_SALES_PASSWORD", "vendedor123"),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido: %d", cfg.HTTP.Port)
	}
	if cfg.Session.Expiration <= 0 {
		return nil, fmt.Errorf("config: SESSION_EXPIRATION_MINUTES debe ser positivo")
	}
	if cfg.Meta.TimeoutSeconds <= 0 {
		cfg.Meta.TimeoutSeconds = 15
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
