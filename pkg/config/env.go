package config

const (
	EnvPrefix = "MINNMARKET"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "MINNMARKET_APP_ENV"
	EnvPort         = "MINNMARKET_APP_PORT"
	EnvLogLevel     = "MINNMARKET_LOG_LEVEL"
	EnvLogWarnStack = "MINNMARKET_LOG_WARN_STACK"

	EnvPricingExchangeRate   = "MINNMARKET_PRICING_EXCHANGE_RATE"
	EnvPricingServicePercent = "MINNMARKET_PRICING_SERVICE_PERCENT"
	EnvPricingFixedFee       = "MINNMARKET_PRICING_FIXED_FEE"
	EnvPricingShippingFee    = "MINNMARKET_PRICING_SHIPPING_FEE"
	EnvPricingDisplayScale   = "MINNMARKET_PRICING_DISPLAY_SCALE"
	EnvPricingSourceCurrency = "MINNMARKET_PRICING_SOURCE_CURRENCY"
	EnvPricingLocalCurrency  = "MINNMARKET_PRICING_LOCAL_CURRENCY"

	// Rate keys used by earlier widget deployments.
	EnvYuanRate     = "YUAN_RATE"
	EnvViteYuanRate = "VITE_YUAN_RATE"

	EnvTelegramBotToken       = "MINNMARKET_TELEGRAM_BOT_TOKEN"
	EnvTelegramOperatorChatID = "MINNMARKET_TELEGRAM_OPERATOR_CHAT_ID"
	EnvTelegramOperatorHandle = "MINNMARKET_TELEGRAM_OPERATOR_HANDLE"
	EnvTelegramLinkDomain     = "MINNMARKET_TELEGRAM_LINK_DOMAIN"
	EnvTelegramAPIBaseURL     = "MINNMARKET_TELEGRAM_API_BASE_URL"
	EnvTelegramTimeout        = "MINNMARKET_TELEGRAM_TIMEOUT"
	EnvTelegramWebhookSecret  = "MINNMARKET_TELEGRAM_WEBHOOK_SECRET"

	EnvSubmitFallbackOnBridgeError = "MINNMARKET_SUBMIT_FALLBACK_ON_BRIDGE_ERROR"
	EnvSubmitRateLimitWindow       = "MINNMARKET_SUBMIT_RATE_LIMIT_WINDOW"
	EnvSubmitRateLimitIPLimit      = "MINNMARKET_SUBMIT_RATE_LIMIT_IP_LIMIT"

	EnvReviewsURL         = "MINNMARKET_REVIEWS_URL"
	EnvRedisURL           = "MINNMARKET_REDIS_URL"
	EnvCORSAllowedOrigins = "MINNMARKET_CORS_ALLOWED_ORIGINS"
)
