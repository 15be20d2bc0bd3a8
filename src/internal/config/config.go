package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultServerHost = "0.0.0.0"
const defaultServerPort = 8090
const defaultShutdownTimeout = 10 * time.Second
const defaultGatewayBaseURL = "http://localhost:8080/api"
const defaultGatewayTimeout = 10 * time.Second
const defaultFallbackSettleDelay = 2 * time.Second
const defaultTransferCurrency = "COP"
const defaultChannelID = "BancoDigitalApp"
const defaultChannelKey = "BancoDigitalKey001"
const defaultLogLevel = "info"
const defaultLogFormat = "text"
const defaultServiceName = "banco-digital"
const defaultAllowedOrigins = "http://localhost:3000"
const defaultMaxSessions = 1000

type Config struct {
	ServerHost             string
	ServerPort             int
	ShutdownTimeout        time.Duration
	GatewayBaseURL         string
	GatewayTimeout         time.Duration
	FallbackSettleDelay    time.Duration
	TransferCurrency       string
	LocalBeneficiaryCredit bool
	ChannelID              string
	ChannelKey             string
	LogLevel               string
	LogFormat              string
	ServiceName            string
	TracingEnabled         bool
	AllowedOrigins         []string
	MaxSessions            int
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

func Load() (Config, error) {
	port, err := intOrDefault("SERVER_PORT", defaultServerPort)
	if err != nil {
		return Config{}, err
	}
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("port %d is out of range", port)
	}

	shutdownTimeout, err := durationOrDefault("SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return Config{}, err
	}

	gatewayTimeout, err := durationOrDefault("GATEWAY_TIMEOUT", defaultGatewayTimeout)
	if err != nil {
		return Config{}, err
	}

	settleDelay, err := durationOrDefault("FALLBACK_SETTLE_DELAY", defaultFallbackSettleDelay)
	if err != nil {
		return Config{}, err
	}

	localCredit, err := boolOrDefault("LOCAL_BENEFICIARY_CREDIT", false)
	if err != nil {
		return Config{}, err
	}

	tracingEnabled, err := boolOrDefault("TRACING_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	maxSessions, err := intOrDefault("MAX_SESSIONS", defaultMaxSessions)
	if err != nil {
		return Config{}, err
	}
	if maxSessions <= 0 {
		return Config{}, fmt.Errorf("MAX_SESSIONS must be positive")
	}

	currency := strings.ToUpper(valueOrDefault("TRANSFER_CURRENCY", defaultTransferCurrency))
	if len(currency) != 3 {
		return Config{}, fmt.Errorf("TRANSFER_CURRENCY must be 3 characters")
	}

	return Config{
		ServerHost:             valueOrDefault("SERVER_HOST", defaultServerHost),
		ServerPort:             port,
		ShutdownTimeout:        shutdownTimeout,
		GatewayBaseURL:         strings.TrimRight(valueOrDefault("GATEWAY_BASE_URL", defaultGatewayBaseURL), "/"),
		GatewayTimeout:         gatewayTimeout,
		FallbackSettleDelay:    settleDelay,
		TransferCurrency:       currency,
		LocalBeneficiaryCredit: localCredit,
		ChannelID:              valueOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:             valueOrDefault("CHANNEL_KEY", defaultChannelKey),
		LogLevel:               valueOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:              valueOrDefault("LOG_FORMAT", defaultLogFormat),
		ServiceName:            valueOrDefault("SERVICE_NAME", defaultServiceName),
		TracingEnabled:         tracingEnabled,
		AllowedOrigins:         parseList(valueOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins)),
		MaxSessions:            maxSessions,
	}, nil
}

func valueOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func intOrDefault(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return parsed, nil
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return parsed, nil
}

func boolOrDefault(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func parseList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
