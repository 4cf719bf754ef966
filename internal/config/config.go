package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "ArenaPass"
	defaultAppEnv        = "development"
	defaultPort          = "5000"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultTokenTTL      = time.Hour

	defaultHorizonURL        = "https://horizon-testnet.stellar.org"
	defaultFriendbotURL      = "https://friendbot.stellar.org"
	defaultNetworkPassphrase = "Test SDF Network ; September 2015"
	defaultFundingAmount     = "10"

	defaultMpesaBaseURL = "https://api.safaricom.co.ke"
)

// Stellar groups ledger-service settings used by the account provisioner.
type Stellar struct {
	HorizonURL        string
	FriendbotURL      string
	NetworkPassphrase string
	SourceSecret      string
	AssetCode         string
	AssetIssuer       string
	FundingAmount     string
}

// Mpesa groups Daraja credentials used by the payment initiator.
type Mpesa struct {
	BaseURL        string
	Shortcode      string
	Passkey        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
}

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	APIKey         string
	TokenTTL       time.Duration
	ShutdownPeriod time.Duration
	Stellar        Stellar
	Mpesa          Mpesa
}

// Load reads configuration values from the environment and populates a Config
// instance. Infrastructure URLs are only mandatory outside development so the
// binary can run against in-memory stores locally.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		APIKey:         os.Getenv("API_KEY"),
		TokenTTL:       defaultTokenTTL,
		ShutdownPeriod: defaultShutdownDelay,
		Stellar: Stellar{
			HorizonURL:        getEnv("STELLAR_HORIZON_URL", defaultHorizonURL),
			FriendbotURL:      getEnv("STELLAR_FRIENDBOT_URL", defaultFriendbotURL),
			NetworkPassphrase: getEnv("STELLAR_NETWORK_PASSPHRASE", defaultNetworkPassphrase),
			SourceSecret:      os.Getenv("STELLAR_SOURCE_SECRET"),
			AssetCode:         os.Getenv("STELLAR_ASSET_CODE"),
			AssetIssuer:       os.Getenv("STELLAR_ASSET_ISSUER"),
			FundingAmount:     getEnv("STELLAR_FUNDING_AMOUNT", defaultFundingAmount),
		},
		Mpesa: Mpesa{
			BaseURL:        getEnv("MPESA_BASE_URL", defaultMpesaBaseURL),
			Shortcode:      os.Getenv("MPESA_SHORTCODE"),
			Passkey:        os.Getenv("MPESA_PASSKEY"),
			ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
			CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		},
	}

	if v := os.Getenv("TOKEN_TTL_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL_SECONDS: %w", err)
		}
		cfg.TokenTTL = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("API_KEY must be set")
	}

	// A source secret without an asset code would build unfundable trustlines.
	if cfg.Stellar.SourceSecret != "" && cfg.Stellar.AssetCode == "" {
		return Config{}, fmt.Errorf("STELLAR_ASSET_CODE must be set when STELLAR_SOURCE_SECRET is set")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.Stellar.SourceSecret == "" {
			return Config{}, fmt.Errorf("STELLAR_SOURCE_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development-like environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
