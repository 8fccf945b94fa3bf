package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/pkg/env"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

type Config struct {
	App        AppConfig
	Pricing    PricingConfig
	Telegram   TelegramConfig
	Submit     SubmitConfig
	Storefront StorefrontConfig
	Redis      RedisConfig
	CORS       CORSConfig
}

// Load reads the environment and validates the result. Every invalid value
// is reported, not only the first one.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.applyLegacyRate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	var err error
	if port, convErr := strconv.Atoi(strings.TrimSpace(c.App.Port)); convErr != nil || port <= 0 || port > 65535 {
		err = multierr.Append(err, fmt.Errorf("%s must be a valid port, got %q", EnvPort, c.App.Port))
	}
	err = multierr.Append(err, c.Pricing.Engine().Validate())
	if c.Telegram.OperatorChatID != 0 && strings.TrimSpace(c.Telegram.BotToken) == "" {
		err = multierr.Append(err, fmt.Errorf("%s requires %s", EnvTelegramOperatorChatID, EnvTelegramBotToken))
	}
	if strings.TrimSpace(strings.TrimPrefix(c.Telegram.OperatorHandle, "@")) == "" {
		err = multierr.Append(err, fmt.Errorf("%s is required", EnvTelegramOperatorHandle))
	}
	if c.Telegram.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvTelegramTimeout))
	}
	if c.Submit.RateLimitWindow <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvSubmitRateLimitWindow))
	}
	if c.Submit.RateLimitIPLimit <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvSubmitRateLimitIPLimit))
	}
	if err != nil {
		return errors.Join(errors.New("invalid config"), err)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"MINNMARKET_APP_ENV" default:"dev"`
	Port         string `envconfig:"MINNMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MINNMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MINNMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig is loaded once at startup and never changes afterwards.
type PricingConfig struct {
	ExchangeRate   decimal.Decimal `envconfig:"MINNMARKET_PRICING_EXCHANGE_RATE" default:"14.6"`
	ServicePercent decimal.Decimal `envconfig:"MINNMARKET_PRICING_SERVICE_PERCENT" default:"0.07"`
	FixedFee       decimal.Decimal `envconfig:"MINNMARKET_PRICING_FIXED_FEE" default:"350"`
	ShippingFee    decimal.Decimal `envconfig:"MINNMARKET_PRICING_SHIPPING_FEE" default:"990"`
	DisplayScale   int32           `envconfig:"MINNMARKET_PRICING_DISPLAY_SCALE" default:"0"`
	SourceCurrency string          `envconfig:"MINNMARKET_PRICING_SOURCE_CURRENCY" default:"CNY"`
	LocalCurrency  string          `envconfig:"MINNMARKET_PRICING_LOCAL_CURRENCY" default:"RUB"`
}

// Engine converts the loaded values into the quote engine's config.
func (p PricingConfig) Engine() quote.PricingConfig {
	return quote.PricingConfig{
		ExchangeRate:   p.ExchangeRate,
		ServicePercent: p.ServicePercent,
		FixedFee:       p.FixedFee,
		ShippingFee:    p.ShippingFee,
		DisplayScale:   p.DisplayScale,
		SourceCurrency: strings.ToUpper(strings.TrimSpace(p.SourceCurrency)),
		LocalCurrency:  strings.ToUpper(strings.TrimSpace(p.LocalCurrency)),
	}
}

// applyLegacyRate honours YUAN_RATE and VITE_YUAN_RATE when the prefixed
// key is not set.
func (p *PricingConfig) applyLegacyRate() error {
	if _, ok := os.LookupEnv(EnvPricingExchangeRate); ok {
		return nil
	}
	raw := env.First("", EnvYuanRate, EnvViteYuanRate)
	if raw == "" {
		return nil
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parsing legacy exchange rate %q: %w", raw, err)
	}
	p.ExchangeRate = rate
	return nil
}

type TelegramConfig struct {
	BotToken       string        `envconfig:"MINNMARKET_TELEGRAM_BOT_TOKEN"`
	OperatorChatID int64         `envconfig:"MINNMARKET_TELEGRAM_OPERATOR_CHAT_ID"`
	OperatorHandle string        `envconfig:"MINNMARKET_TELEGRAM_OPERATOR_HANDLE" default:"maxxim_sv"`
	LinkDomain     string        `envconfig:"MINNMARKET_TELEGRAM_LINK_DOMAIN" default:"t.me"`
	APIBaseURL     string        `envconfig:"MINNMARKET_TELEGRAM_API_BASE_URL" default:"https://api.telegram.org"`
	Timeout        time.Duration `envconfig:"MINNMARKET_TELEGRAM_TIMEOUT" default:"10s"`
	// WebhookSecret is the secret_token registered with setWebhook. Empty
	// disables the header check.
	WebhookSecret  string        `envconfig:"MINNMARKET_TELEGRAM_WEBHOOK_SECRET"`
}

// BridgeEnabled reports whether submissions can be delivered to the
// operator chat directly.
func (t TelegramConfig) BridgeEnabled() bool {
	return strings.TrimSpace(t.BotToken) != "" && t.OperatorChatID != 0
}

type SubmitConfig struct {
	FallbackOnBridgeError bool          `envconfig:"MINNMARKET_SUBMIT_FALLBACK_ON_BRIDGE_ERROR" default:"true"`
	RateLimitWindow       time.Duration `envconfig:"MINNMARKET_SUBMIT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitIPLimit      int           `envconfig:"MINNMARKET_SUBMIT_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type StorefrontConfig struct {
	ReviewsURL string `envconfig:"MINNMARKET_REVIEWS_URL" default:"https://t.me/minnmarket_reviews"`
}

// RedisConfig is optional. Without a URL the submit rate limit is off.
type RedisConfig struct {
	URL          string        `envconfig:"MINNMARKET_REDIS_URL"`
	PoolSize     int           `envconfig:"MINNMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MINNMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MINNMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MINNMARKET_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"MINNMARKET_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MINNMARKET_CORS_ALLOWED_ORIGINS" default:"*"`
}
