package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
    "time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers, durations for deadlines.
type Config struct {
    Env        string        // application environment (e.g. "dev", "prod")
    Port       string        // HTTP port to listen on
    DBUser     string        // database username
    DBPass     string        // database password (optional)
    DBHost     string        // database host address
    DBPort     string        // database port number
    DBName     string        // database name
    PayBaseURL string        // base URL of the payment provider gateway
    PayTimeout time.Duration // deadline for a single provider dispatch call
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:        must("APP_ENV"),      // environment (dev/test/prod)
        Port:       must("APP_PORT"),     // port to bind the HTTP server
        DBUser:     must("DB_USER"),      // database user
        DBPass:     os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:     must("DB_HOST"),      // database host
        DBPort:     must("DB_PORT"),      // database port
        DBName:     must("DB_NAME"),      // database name
        PayBaseURL: must("PAY_BASE_URL"), // e.g. http://localhost:8081
        PayTimeout: envDur("PAY_TIMEOUT", 10*time.Second),
    }
}

// MockpayConfig holds the provider simulator's runtime settings.
type MockpayConfig struct {
    Port           string        // HTTP port the simulator listens on
    WebhookBaseURL string        // base URL of the reservation server
    WebhookDelay   time.Duration // delay before the settlement webhook fires
}

// LoadMockpay reads the simulator's configuration from environment
// variables.
func LoadMockpay() MockpayConfig {
    return MockpayConfig{
        Port:           must("MOCKPAY_PORT"),
        WebhookBaseURL: must("WEBHOOK_BASE_URL"), // e.g. http://localhost:8080
        WebhookDelay:   envDur("WEBHOOK_DELAY", time.Second),
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
