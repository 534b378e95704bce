package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Security  SecurityConfig
	Bootstrap BootstrapConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración del almacenamiento.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool // aplica las migraciones embebidas al arrancar
	MaxConns    int
	MinConns    int
	ForceIPv4   bool // Docker suele no tener IPv6
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	CORSOrigins    []string
	SwaggerEnabled bool
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig parámetros del hash de contraseñas.
type SecurityConfig struct {
	PBKDF2Rounds int
}

// BootstrapConfig cuenta super admin inicial. Solo se crea si no existe ningún super admin.
type BootstrapConfig struct {
	Enabled    bool
	Username   string
	Password   string
	EmployeeID string
	RealName   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env (se fusiona sobre .env)
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV"),
			Name:     getString(v, "APP_NAME"),
			LogLevel: getString(v, "LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER")),
			DatabaseURL: getString(v, "DATABASE_URL"),
			Host:        getString(v, "DB_HOST"),
			Port:        getInt(v, "DB_PORT"),
			User:        getString(v, "DB_USER"),
			Password:    getString(v, "DB_PASSWORD"),
			DBName:      getString(v, "DB_NAME"),
			SSLMode:     getString(v, "DB_SSLMODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
			MaxConns:    getInt(v, "DB_MAX_CONNS"),
			MinConns:    getInt(v, "DB_MIN_CONNS"),
			ForceIPv4:   v.GetBool("DB_FORCE_IPV4"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES"),
			Issuer:     getString(v, "JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST"),
			Port:           getInt(v, "HTTP_PORT"),
			CORSOrigins:    splitList(getString(v, "CORS_ORIGINS")),
			SwaggerEnabled: v.GetBool("SWAGGER_ENABLED"),
		},
		Security: SecurityConfig{
			PBKDF2Rounds: getInt(v, "PBKDF2_ROUNDS"),
		},
		Bootstrap: BootstrapConfig{
			Enabled:    v.GetBool("BOOTSTRAP_ADMIN"),
			Username:   getString(v, "BOOTSTRAP_ADMIN_USERNAME"),
			Password:   getString(v, "BOOTSTRAP_ADMIN_PASSWORD"),
			EmployeeID: getString(v, "BOOTSTRAP_ADMIN_EMPLOYEE_ID"),
			RealName:   getString(v, "BOOTSTRAP_ADMIN_REAL_NAME"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q (postgres|memory)", c.DB.Driver)
	}
	if c.JWT.Secret == "" && c.App.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "libreria-api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "library_management")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_FORCE_IPV4", false)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 1440) // 1 día
	v.SetDefault("JWT_ISSUER", "libreria-api")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("SWAGGER_ENABLED", true)
	v.SetDefault("PBKDF2_ROUNDS", 29000)
	v.SetDefault("BOOTSTRAP_ADMIN", true)
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "admin")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin123")
	v.SetDefault("BOOTSTRAP_ADMIN_EMPLOYEE_ID", "ADMIN001")
	v.SetDefault("BOOTSTRAP_ADMIN_REAL_NAME", "Super Admin")
}

func getString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

func getInt(v *viper.Viper, key string) int {
	switch val := v.Get(key).(type) {
	case int:
		return val
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(val))
		return n
	default:
		return v.GetInt(key)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
