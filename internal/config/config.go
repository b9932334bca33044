package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, the scanned site,
// scan behavior and graceful shutdown.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigin is the CORS allowed origin
		AllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" env-default:"*" yaml:"allowedOrigin"`
	} `yaml:"http"`

	// Site describes the scanned site and how to reach it
	Site struct {
		// RESTRoot is the absolute URL of the site's REST API root
		RESTRoot string `env:"SITE_REST_ROOT" env-default:"http://localhost/wp-json/" yaml:"restRoot"`
		// HomeURL is the site home URL, used as the preview fallback
		HomeURL string `env:"SITE_HOME_URL" env-default:"http://localhost/" yaml:"homeUrl"`
		// ScannableURLsRestPath is the REST path of the scannable URLs resource
		ScannableURLsRestPath string `env:"SITE_SCANNABLE_URLS_REST_PATH" env-default:"/amp/v1/scannable-urls" yaml:"scannableUrlsRestPath"` //nolint: lll
		// OptionsRestPath is the REST path of the options resource
		OptionsRestPath string `env:"SITE_OPTIONS_REST_PATH" env-default:"/amp/v1/options" yaml:"optionsRestPath"`
		// ValidateNonce is the validate credential. Scanning is refused without it
		ValidateNonce string `env:"SITE_VALIDATE_NONCE" env-default:"" yaml:"validateNonce"`
		// Username is the user the application password belongs to
		Username string `env:"SITE_USERNAME" env-default:"" yaml:"username"`
		// AppPassword is an application password used for basic auth
		AppPassword string `env:"SITE_APP_PASSWORD" env-default:"" yaml:"appPassword"`
		// RequestTimeout is the maximum duration of a single request to the site
		RequestTimeout time.Duration `env:"SITE_REQUEST_TIMEOUT" env-default:"2m" yaml:"requestTimeout"`
		// UserAgent is sent with every request to the site
		UserAgent string `env:"SITE_USER_AGENT" env-default:"sitescan/1.0" yaml:"userAgent"`
	} `yaml:"site"`

	// Scan contains scan behavior settings
	Scan struct {
		// AMPFirst validates plain URLs regardless of the theme support mode
		AMPFirst bool `env:"SCAN_AMP_FIRST" env-default:"false" yaml:"ampFirst"`
		// FetchCachedValidationErrors loads cached validation results with the URL list
		FetchCachedValidationErrors bool `env:"SCAN_FETCH_CACHED_VALIDATION_ERRORS" env-default:"false" yaml:"fetchCachedValidationErrors"` //nolint: lll
		// LimitPerType caps the number of URLs per template kind, 0 keeps the site default
		LimitPerType int `env:"SCAN_LIMIT_PER_TYPE" env-default:"0" yaml:"limitPerType"`
		// IncludeConditionals restricts URL discovery to these template conditionals
		IncludeConditionals []string `env:"SCAN_INCLUDE_CONDITIONALS" env-separator:"," yaml:"includeConditionals"`
		// EventBuffer is the event channel capacity of each scan subscriber
		EventBuffer int `env:"SCAN_EVENT_BUFFER" env-default:"16" yaml:"eventBuffer"`
	} `yaml:"scan"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
