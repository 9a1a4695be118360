package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// BerlinLoc is the timezone every schedule decision and audit timestamp uses.
// We try the IANA database first; the FixedZone fallback keeps the binary
// working on hosts without tzdata (wrong by one hour during DST).
var BerlinLoc = loadBerlin()

func loadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}

// Config holds every runtime knob. Secrets stay in the environment (the
// Alpaca SDK and the OpenAI client read them there); the struct carries the
// non-secret parameters the engine and scheduler consume.
type Config struct {
	// Strategy parameters. Defaults encode the production policy: at most
	// 15 names, 30% concentration ceiling, 10% slot per buy, 10% of cash
	// held back as reserve.
	MaxPositions   int
	PositionCapPct float64 // ceiling per position, fraction of investable capital
	SlotPct        float64 // size of each buy, fraction of investable capital
	CashReserveFct float64 // fraction of cash counted into investable capital

	// Signal source.
	OpenAIModel  string
	RedditUser   string
	UniverseFile string

	// Scheduling (Berlin wall clock, weekdays only).
	ScheduleHour   int
	ScheduleMinute int
	RunOnStart     bool

	// Logging.
	AuditLogFile  string
	MaxLogSizeMB  int64
	MaxLogBackups int

	Version string
}

// Load initializes the configuration.
// It reads an optional .env file, validates the required secrets, and
// resolves every optional knob to its default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	// Critical and confidential variables. The process cannot trade or
	// generate signals without them, so we fail fast.
	requiredSecretVars := map[string]bool{
		"APCA_API_KEY_ID":     true,
		"APCA_API_SECRET_KEY": true,
		"APCA_API_BASE_URL":   true,
		"OPENAI_API_KEY":      true,
	}

	var missing []string
	for key := range requiredSecretVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("CRITICAL: Missing required environment variables: %v", missing)
	}

	// Print the .env contents for operator sanity, masking secrets down to
	// their last four characters.
	if envMap, err := godotenv.Read(); err == nil {
		log.Println("--- .env File Variables ---")
		for key, val := range envMap {
			if requiredSecretVars[key] {
				masked := "***"
				if len(val) > 4 {
					masked = "***" + val[len(val)-4:]
				}
				log.Printf("%s=%s", key, masked)
			} else {
				log.Printf("%s=%s", key, val)
			}
		}
		log.Println("---------------------------")
	}

	return &Config{
		MaxPositions:   getEnvAsInt("MAX_POSITIONS", 15),
		PositionCapPct: getEnvAsFloat64("POSITION_CAP_PCT", 0.30),
		SlotPct:        getEnvAsFloat64("SLOT_PCT", 0.10),
		CashReserveFct: getEnvAsFloat64("CASH_RESERVE_FACTOR", 0.90),

		OpenAIModel:  getEnvAsString("OPENAI_MODEL", "gpt-3.5-turbo"),
		RedditUser:   getEnvAsString("REDDIT_USER", "OPINION_IS_UNPOPULAR"),
		UniverseFile: getEnvAsString("UNIVERSE_FILE", "data/NASDAQ.json"),

		ScheduleHour:   getEnvAsInt("SCHEDULE_HOUR", 16),
		ScheduleMinute: getEnvAsInt("SCHEDULE_MINUTE", 0),
		RunOnStart:     getEnvAsBool("RUN_ON_START", false),

		AuditLogFile:  getEnvAsString("AUDIT_LOG_FILE", "execution.log"),
		MaxLogSizeMB:  int64(getEnvAsInt("MAX_LOG_SIZE_MB", 10)),
		MaxLogBackups: getEnvAsInt("MAX_LOG_BACKUPS", 3),
	}
}
