package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; everything about
// the shop itself has sensible defaults so a bare .env with DB credentials is
// enough to run locally.
type Config struct {
	Env         string // application environment ("local" enables verbose errors and schema auto-setup)
	Port        string // HTTP port to listen on
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	AutoSetupDB bool   // create the bookings table on startup (local convenience)
	Shop        ShopConfig
	SMTP        SMTPConfig
}

// ShopConfig enumerates every business rule the booking core consumes.
// There are no open-ended dynamic keys: each option here has exactly one
// documented effect on validation or slot enumeration.
type ShopConfig struct {
	Name         string // shop display name used in emails and the shop endpoint
	Address      string // street address shown in confirmations
	Timezone     string // IANA zone the shop's wall clock runs in
	Open         string // first bookable time of day, HH:MM inclusive
	Close        string // end of bookings, HH:MM exclusive
	StepMin      int    // slot granularity in minutes
	Cutoff       string // HH:MM after which same-day bookings roll to tomorrow
	MaxPerSlot   int    // bookings allowed per exact date+time, 0 = unlimited
	MinParty     int    // smallest accepted party size
	MaxParty     int    // largest accepted party size
	MinNameLen   int    // minimum full-name length in characters
	CutoffNotice string // message attached when a booking rolls to the next day
	NotifyEmail  string // shop inbox for new-booking notifications (falls back to SMTP user)
}

// SMTPConfig carries the outbound mail settings.  When User or Pass is empty
// the notifier is disabled and bookings succeed with a "no email sent" notice.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// Configured reports whether enough SMTP settings are present to send mail.
func (s SMTPConfig) Configured() bool { return s.User != "" && s.Pass != "" }

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	env := envStr("APP_ENV", "local")
	return Config{
		Env:         env,
		Port:        envStr("APP_PORT", "8080"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"), // empty allowed
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		AutoSetupDB: envBool("AUTO_SETUP_DB", env == "local"),
		Shop: ShopConfig{
			Name:       envStr("SHOP_NAME", "Seafood Restaurant"),
			Address:    envStr("SHOP_ADDRESS", ""),
			Timezone:   envStr("SHOP_TIMEZONE", "Asia/Bangkok"),
			Open:       envStr("SHOP_OPEN", "10:00"),
			Close:      envStr("SHOP_CLOSE", "20:00"),
			StepMin:    envInt("SHOP_STEP_MIN", 15),
			Cutoff:     envStr("SHOP_CUTOFF", "20:00"),
			MaxPerSlot: envInt("SHOP_MAX_PER_SLOT", 10),
			MinParty:   envInt("SHOP_MIN_PARTY", 1),
			MaxParty:   envInt("SHOP_MAX_PARTY", 20),
			MinNameLen: envInt("SHOP_MIN_NAME_LEN", 2),
			CutoffNotice: envStr("SHOP_CUTOFF_NOTICE",
				"Same-day booking has closed; your booking was moved to the next day"),
			NotifyEmail: envStr("SHOP_NOTIFY_EMAIL", os.Getenv("SMTP_USER")),
		},
		SMTP: SMTPConfig{
			Host: envStr("SMTP_HOST", "smtp.gmail.com"),
			Port: envInt("SMTP_PORT", 587),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
		},
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
