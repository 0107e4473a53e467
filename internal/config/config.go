// Package config lee la configuración desde variables de entorno.
// Si existe un .env en el directorio de trabajo se carga primero (no pisa variables ya definidas).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"petshop/internal/platform/tracing"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	FrontendURL     string
	DebugAuthHeader bool // acepta X-Debug-User-ID (dev/tests)
	ShutdownTimeout time.Duration

	// Copia en disco del catálogo importado. Vacío => no se escribe.
	CatalogSnapshotPath string

	// Latencias simuladas de pagos y 1C. false => responden al instante.
	MockDelays bool

	// Wishlist en Redis. Vacío => en memoria.
	RedisURL string

	// Límite por IP. RateLimitRPS <= 0 => sin límite.
	RateLimitRPS   float64
	RateLimitBurst int

	// Confía en X-Forwarded-For / X-Real-IP. Sólo detrás de un proxy propio.
	TrustProxy bool

	TracingExporter tracing.Exporter
	OTLPEndpoint    string

	OneC OneCConfig
	Shop ShopConfig
}

// OneCConfig es la conexión OData a 1C (la usa cmd/sync-1c).
type OneCConfig struct {
	ODataURL    string
	User        string
	Password    string
	CatalogName string
	Top         int
	Timeout     time.Duration
}

// ShopConfig: a dónde empuja cmd/sync-1c el catálogo.
type ShopConfig struct {
	ImportURL string
	Token     string
}

// Load carga .env (si existe) y arma la Config con defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Port:                getenv("PORT", "8080"),
		FrontendURL:         getenv("FRONTEND_URL", "http://localhost:3000"),
		CatalogSnapshotPath: getenv("CATALOG_SNAPSHOT_PATH", "data/products.json"),
		RedisURL:            getenv("REDIS_URL", ""),
		OTLPEndpoint:        getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OneC: OneCConfig{
			ODataURL:    getenv("ONEC_ODATA_URL", ""),
			User:        getenv("ONEC_USER", ""),
			Password:    getenv("ONEC_PASSWORD", ""),
			CatalogName: getenv("ONEC_CATALOG", "Catalog_Номенклатура"),
		},
		Shop: ShopConfig{
			ImportURL: getenv("SHOP_IMPORT_URL", "http://localhost:8080/1c/catalog/import"),
			Token:     getenv("SHOP_TOKEN", "sync-1c"),
		},
	}

	var err error
	if cfg.DebugAuthHeader, err = getbool("AUTH_DEBUG_HEADER", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.MockDelays, err = getbool("MOCK_DELAYS", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.ShutdownTimeout, err = getduration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.OneC.Timeout, err = getduration("ONEC_TIMEOUT", 30*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.OneC.Top, err = getint("ONEC_TOP", 50); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitRPS, err = getfloat("RATE_LIMIT_RPS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitBurst, err = getint("RATE_LIMIT_BURST", 20); err != nil {
		errs = append(errs, err)
	}
	if cfg.TrustProxy, err = getbool("TRUST_PROXY", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.TracingExporter, err = tracing.ParseExporter(os.Getenv("TRACING_EXPORTER")); err != nil {
		errs = append(errs, fmt.Errorf("config: TRACING_EXPORTER: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getint(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getfloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("config: %s must be a number: %w", key, err)
	}
	return f, nil
}

func getduration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
