package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AuthMode selects which AuthProvider implementation the process wires up.
type AuthMode string

const (
	// AuthModeMock fabricates a user for any submitted credentials.
	AuthModeMock AuthMode = "mock"
	// AuthModeLocal verifies against locally stored credential records.
	AuthModeLocal AuthMode = "local"
)

// Config captures environment driven configuration values for the booking service.
type Config struct {
	HTTPPort          int
	SQLiteDSN         string
	ServiceFee        int64
	Currency          string
	BookingCodePrefix string
	VisitorTTL        time.Duration
	RatePopupCooldown time.Duration
	AuthMode          AuthMode
	ConciergeAPIKey   string
	ConciergeModel    string
	ConciergeEndpoint string
}

// Load parses configuration values from the current process environment.
//
// Every value has a sensible default; the loader reports values that are
// present but unparsable instead of silently falling back.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          8080,
		SQLiteDSN:         "file:villays.db",
		ServiceFee:        480,
		Currency:          "USD",
		BookingCodePrefix: "OT",
		VisitorTTL:        24 * time.Hour,
		RatePopupCooldown: 5 * time.Minute,
		AuthMode:          AuthModeMock,
		ConciergeModel:    "gemini-3-flash-preview",
		ConciergeEndpoint: "https://generativelanguage.googleapis.com/v1beta",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("VILLAYS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "VILLAYS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("VILLAYS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if feeValue := strings.TrimSpace(os.Getenv("VILLAYS_SERVICE_FEE")); feeValue != "" {
		fee, err := strconv.ParseInt(feeValue, 10, 64)
		if err != nil || fee < 0 {
			invalid = append(invalid, "VILLAYS_SERVICE_FEE")
		} else {
			cfg.ServiceFee = fee
		}
	}

	if currency := strings.TrimSpace(os.Getenv("VILLAYS_CURRENCY")); currency != "" {
		cfg.Currency = strings.ToUpper(currency)
	}

	if prefix := strings.TrimSpace(os.Getenv("VILLAYS_BOOKING_CODE_PREFIX")); prefix != "" {
		cfg.BookingCodePrefix = strings.ToUpper(prefix)
	}

	if ttlValue := strings.TrimSpace(os.Getenv("VILLAYS_VISITOR_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "VILLAYS_VISITOR_TTL")
		} else {
			cfg.VisitorTTL = ttl
		}
	}

	if cooldownValue := strings.TrimSpace(os.Getenv("VILLAYS_RATE_POPUP_COOLDOWN")); cooldownValue != "" {
		cooldown, err := time.ParseDuration(cooldownValue)
		if err != nil || cooldown <= 0 {
			invalid = append(invalid, "VILLAYS_RATE_POPUP_COOLDOWN")
		} else {
			cfg.RatePopupCooldown = cooldown
		}
	}

	if mode := strings.TrimSpace(strings.ToLower(os.Getenv("VILLAYS_AUTH_MODE"))); mode != "" {
		switch AuthMode(mode) {
		case AuthModeMock, AuthModeLocal:
			cfg.AuthMode = AuthMode(mode)
		default:
			invalid = append(invalid, "VILLAYS_AUTH_MODE")
		}
	}

	if key := strings.TrimSpace(os.Getenv("VILLAYS_CONCIERGE_API_KEY")); key != "" {
		cfg.ConciergeAPIKey = key
	}
	if model := strings.TrimSpace(os.Getenv("VILLAYS_CONCIERGE_MODEL")); model != "" {
		cfg.ConciergeModel = model
	}
	if endpoint := strings.TrimSpace(os.Getenv("VILLAYS_CONCIERGE_ENDPOINT")); endpoint != "" {
		cfg.ConciergeEndpoint = strings.TrimRight(endpoint, "/")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
