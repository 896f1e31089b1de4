package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"proofgate/internal/domain"
)

type Config struct {
	BotToken string

	// ReviewerID is the single identity allowed to decide review requests
	// and toggle photo intake.
	ReviewerID domain.UserID

	Codes        domain.CodeTable
	ApprovalCode string

	PhotoIntake bool
	SessionTTL  time.Duration
}

// defaultCodes is used when no codes file is configured.
var defaultCodes = domain.CodeTable{
	"8D3c": "https://mega.nz/folder/DB9XTZbB#4OTr7_IYHzlvvx8Qb9qq2g",
	"2222": "https://example.com/link2",
	"3333": "https://example.com/link3",
	"4444": "https://example.com/link4",
	"5555": "https://example.com/link5",
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		BotToken:     getEnv("PROOFGATE_BOT_TOKEN", ""),
		ApprovalCode: getEnv("PROOFGATE_APPROVAL_CODE", "7w0G"),
		PhotoIntake:  getBoolEnv("PROOFGATE_PHOTO_INTAKE", true),
	}
	if cfg.BotToken == "" {
		log.Fatal("PROOFGATE_BOT_TOKEN must be set")
	}

	reviewerStr := getEnv("PROOFGATE_REVIEWER_ID", "")
	if reviewerStr == "" {
		log.Fatal("PROOFGATE_REVIEWER_ID must be set")
	}
	reviewer, err := strconv.ParseInt(reviewerStr, 10, 64)
	if err != nil {
		log.Fatalf("PROOFGATE_REVIEWER_ID must be a numeric id: %v", err)
	}
	cfg.ReviewerID = domain.UserID(reviewer)

	ttlSeconds, err := strconv.Atoi(getEnv("PROOFGATE_SESSION_TTL_SECONDS", "1800"))
	if err != nil || ttlSeconds <= 0 {
		log.Fatalf("PROOFGATE_SESSION_TTL_SECONDS must be a positive integer")
	}
	cfg.SessionTTL = time.Duration(ttlSeconds) * time.Second

	codesFile := getEnv("PROOFGATE_CODES_FILE", "")
	if codesFile == "" {
		cfg.Codes = defaultCodes
		return cfg
	}

	codes, err := loadCodes(codesFile)
	if err != nil {
		log.Fatalf("Reading codes file: %v", err)
	}
	cfg.Codes = codes

	return cfg
}

// codesFile is the on-disk shape of the code table. Codes are kept as entry
// values rather than mapping keys because config keys are case-folded and
// code matching is case-sensitive.
type codesFile struct {
	Codes []codeEntry `mapstructure:"codes"`
}

type codeEntry struct {
	Code string `mapstructure:"code"`
	Link string `mapstructure:"link"`
}

// loadCodes reads the code → link table from a YAML/TOML/JSON file.
func loadCodes(path string) (domain.CodeTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var raw codesFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, err
	}

	codes := make(domain.CodeTable, len(raw.Codes))
	for _, e := range raw.Codes {
		codes[e.Code] = e.Link
	}
	return codes, nil
}
