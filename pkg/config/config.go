package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Proveedores de pago soportados.
const (
	PaymentProviderStripe = "stripe"
	PaymentProviderHTTP   = "http"
)

// Proveedores de IA soportados para el chat del sitio.
const (
	AIProviderAnthropic = "anthropic"
	AIProviderGemini    = "gemini"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
	Contact  ContactConfig
	AI       AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig verificación de los tokens emitidos por el proveedor de auth (HS256, secreto compartido).
type JWTConfig struct {
	Secret string
	Issuer string // vacío = no se valida el issuer
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

// PaymentConfig selecciona el colaborador que crea la sesión de pago.
type PaymentConfig struct {
	Provider        string // stripe | http
	StripeSecretKey string
	SessionURL      string // endpoint externo cuando Provider = http
	Timeout         time.Duration
}

// CheckoutConfig parámetros del flujo de checkout.
type CheckoutConfig struct {
	SuccessURL      string
	CancelURL       string
	SessionTTL      time.Duration
	DocumentVersion string // versión de términos/privacidad/acuerdo registrada en el audit log
}

// ContactConfig límite de envíos del formulario de contacto.
type ContactConfig struct {
	MinInterval time.Duration
}

// AIConfig proveedor y credenciales del chat.
type AIConfig struct {
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, STRIPE_SECRET_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

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
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "oasis-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "oasis"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Payment: PaymentConfig{
			Provider:        strings.ToLower(getString(v, "PAYMENT_PROVIDER", PaymentProviderStripe)),
			StripeSecretKey: getString(v, "STRIPE_SECRET_KEY", ""),
			SessionURL:      getString(v, "PAYMENT_SESSION_URL", ""),
			Timeout:         time.Duration(getInt(v, "PAYMENT_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Checkout: CheckoutConfig{
			SuccessURL:      getString(v, "CHECKOUT_SUCCESS_URL", "http://localhost:5173/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:       getString(v, "CHECKOUT_CANCEL_URL", "http://localhost:5173/pricing"),
			SessionTTL:      time.Duration(getInt(v, "CHECKOUT_SESSION_TTL_MINUTES", 120)) * time.Minute,
			DocumentVersion: getString(v, "LEGAL_DOCUMENT_VERSION", "1.0"),
		},
		Contact: ContactConfig{
			MinInterval: time.Duration(getInt(v, "CONTACT_RATE_LIMIT_SECONDS", 30)) * time.Second,
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", AIProviderAnthropic)),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas antes de arrancar el servidor.
func (c *Config) Validate() error {
	switch c.Payment.Provider {
	case PaymentProviderStripe:
		if c.App.IsProduction() && c.Payment.StripeSecretKey == "" {
			return fmt.Errorf("config: STRIPE_SECRET_KEY requerido en producción")
		}
	case PaymentProviderHTTP:
		if c.Payment.SessionURL == "" {
			return fmt.Errorf("config: PAYMENT_SESSION_URL requerido con PAYMENT_PROVIDER=http")
		}
	default:
		return fmt.Errorf("config: PAYMENT_PROVIDER desconocido %q", c.Payment.Provider)
	}
	switch c.AI.Provider {
	case AIProviderAnthropic, AIProviderGemini:
	default:
		return fmt.Errorf("config: AI_PROVIDER desconocido %q", c.AI.Provider)
	}
	if c.Checkout.SessionTTL <= 0 {
		return fmt.Errorf("config: CHECKOUT_SESSION_TTL_MINUTES debe ser positivo")
	}
	if c.Contact.MinInterval < 0 {
		return fmt.Errorf("config: CONTACT_RATE_LIMIT_SECONDS no puede ser negativo")
	}
	return nil
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
