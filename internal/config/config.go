package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pkgauth "github.com/BradenHooton/folio/pkg/auth"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	Chat      ChatConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	Version        string
	LogLevel       string
	LogFile        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	TrustedProxies []string
}

type AdminConfig struct {
	Username             string
	PasswordHash         string // bcrypt
	MaxLoginAttempts     int
	LockoutDuration      time.Duration
	SessionDuration      time.Duration
	TimingDelayBaseMs    int
	TimingDelayRandomMs  int
	TimingDelayOnSuccess bool
}

type RateLimitConfig struct {
	ContactCooldown   time.Duration
	ChatCooldown      time.Duration
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

type EmailConfig struct {
	AWSRegion        string
	FromAddress      string
	ContactRecipient string
}

// Configured reports whether contact notifications can be sent
func (c EmailConfig) Configured() bool {
	return c.AWSRegion != "" && c.FromAddress != "" && c.ContactRecipient != ""
}

type ChatConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	MaxTokens         int
	Temperature       float32
	Timeout           time.Duration
	KnowledgeBaseFile string
	ConversationTTL   time.Duration
}

// Configured reports whether chat completions can be requested
func (c ChatConfig) Configured() bool {
	return c.APIKey != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			Version:        getEnv("APP_VERSION", "2.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFile:        getEnv("LOG_FILE", ""),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
		},
		Admin: AdminConfig{
			Username:             strings.TrimSpace(getEnv("ADMIN_USERNAME", "")),
			MaxLoginAttempts:     getEnvAsInt("MAX_LOGIN_ATTEMPTS", 3),
			LockoutDuration:      getEnvAsDuration("LOCKOUT_DURATION", 10*time.Minute),
			SessionDuration:      getEnvAsDuration("SESSION_DURATION", 1*time.Hour),
			TimingDelayBaseMs:    getEnvAsInt("TIMING_DELAY_BASE_MS", 0),
			TimingDelayRandomMs:  getEnvAsInt("TIMING_DELAY_RANDOM_MS", 0),
			TimingDelayOnSuccess: getEnvAsBool("TIMING_DELAY_ON_SUCCESS", false),
		},
		RateLimit: RateLimitConfig{
			ContactCooldown:   getEnvAsDuration("CONTACT_COOLDOWN", 60*time.Second),
			ChatCooldown:      getEnvAsDuration("CHAT_COOLDOWN", 2*time.Second),
			RequestsPerMinute: getEnvAsInt("REQUESTS_PER_MINUTE", 60),
			CleanupInterval:   getEnvAsDuration("CLEANUP_INTERVAL", 10*time.Minute),
		},
		Email: EmailConfig{
			AWSRegion:        getEnv("AWS_REGION", ""),
			FromAddress:      getEnv("EMAIL_FROM", ""),
			ContactRecipient: getEnv("CONTACT_RECIPIENT", ""),
		},
		Chat: ChatConfig{
			APIKey:            getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:           getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:             getEnv("CHAT_MODEL", "qwen/qwen-2.5-32b-instruct:free"),
			MaxTokens:         getEnvAsInt("CHAT_MAX_TOKENS", 300),
			Temperature:       getEnvAsFloat32("CHAT_TEMPERATURE", 0.7),
			Timeout:           getEnvAsDuration("CHAT_TIMEOUT", 15*time.Second),
			KnowledgeBaseFile: getEnv("KNOWLEDGE_BASE_FILE", ""),
			ConversationTTL:   getEnvAsDuration("CHAT_CONVERSATION_TTL", 1*time.Hour),
		},
	}

	if cfg.Admin.Username == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME is required")
	}

	hash, err := resolvePasswordHash(env)
	if err != nil {
		return nil, err
	}
	cfg.Admin.PasswordHash = hash

	if cfg.Admin.MaxLoginAttempts < 1 {
		return nil, fmt.Errorf("MAX_LOGIN_ATTEMPTS must be at least 1 (got %d)", cfg.Admin.MaxLoginAttempts)
	}
	if cfg.RateLimit.RequestsPerMinute < 1 {
		return nil, fmt.Errorf("REQUESTS_PER_MINUTE must be at least 1 (got %d)", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Admin.TimingDelayBaseMs < 0 || cfg.Admin.TimingDelayRandomMs < 0 {
		return nil, fmt.Errorf("TIMING_DELAY_BASE_MS and TIMING_DELAY_RANDOM_MS must not be negative")
	}

	positive := []struct {
		key   string
		value time.Duration
	}{
		{"LOCKOUT_DURATION", cfg.Admin.LockoutDuration},
		{"SESSION_DURATION", cfg.Admin.SessionDuration},
		{"CONTACT_COOLDOWN", cfg.RateLimit.ContactCooldown},
		{"CHAT_COOLDOWN", cfg.RateLimit.ChatCooldown},
		{"CLEANUP_INTERVAL", cfg.RateLimit.CleanupInterval},
		{"CHAT_CONVERSATION_TTL", cfg.Chat.ConversationTTL},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return nil, fmt.Errorf("%s must be positive (got %s)", p.key, p.value)
		}
	}

	return cfg, nil
}

// resolvePasswordHash prefers a precomputed bcrypt ADMIN_PASSWORD_HASH and
// falls back to hashing ADMIN_PASSWORD at startup. The plaintext is never kept.
func resolvePasswordHash(env string) (string, error) {
	if hash := getEnv("ADMIN_PASSWORD_HASH", ""); hash != "" {
		if !pkgauth.IsBcryptHash(hash) {
			return "", fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash")
		}
		return hash, nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return "", fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}

	if env == "production" {
		if err := pkgauth.ValidatePassword(password); err != nil {
			return "", fmt.Errorf("ADMIN_PASSWORD rejected: %w", err)
		}
	}

	hash, err := pkgauth.HashPassword(password, getEnvAsInt("BCRYPT_COST", pkgauth.BcryptCost))
	if err != nil {
		return "", fmt.Errorf("failed to hash ADMIN_PASSWORD: %w", err)
	}
	return hash, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsFloat32(key string, defaultVal float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultVal
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
