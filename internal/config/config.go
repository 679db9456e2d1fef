// Package config loads application configuration from environment
// variables.  A .env file is honored when present (godotenv in main);
// required variables halt startup with a fatal log message.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Secrets (the provider key secret, the JWT
// secret, the admin password hash) are never defaulted.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	LedgerPath string // path of the xlsx registration ledger
	RegPrefix  string // registration ID prefix stamped on every row

	RazorpayKeyID     string // public key id handed to the checkout widget
	RazorpayKeySecret string // shared secret used for callback signature checks

	AdminEmail    string // the single admin principal
	AdminPassHash string // bcrypt hash of the admin password
	JWTSecret     string // secret used to sign admin access tokens
	AccessTTLMin  int    // admin access token time-to-live in minutes

	CheckoutTimeout time.Duration // max wait for a checkout callback; 0 = unbounded
	CORSOrigins     []string      // allowed browser origins

	RabbitURL string // broker URL; empty selects the amqp defaults
}

// Load reads configuration from the environment.  Missing required
// variables are fatal; optional values fall back to fest defaults.
func Load() Config {
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "3001"),
		LedgerPath: envStr("LEDGER_PATH", "data/registrations.xlsx"),
		RegPrefix:  envStr("REGISTRATION_PREFIX", "CACHE2K25"),

		RazorpayKeyID:     must("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: must("RAZORPAY_KEY_SECRET"),

		AdminEmail:    must("ADMIN_EMAIL"),
		AdminPassHash: must("ADMIN_PASSWORD_HASH"),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),

		CheckoutTimeout: envDur("CHECKOUT_TIMEOUT", 0),
		CORSOrigins:     splitOrigins(envStr("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		RabbitURL: os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

func splitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
