package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings for the exchange pipeline. Values
// come from the environment, optionally seeded from a .env file, with
// defaults suitable for a local run.
type Config struct {
	KeysDir         string // per-participant PEM key directories
	RecordsPath     string // JSON document of persisted message records
	DBPath          string // LevelDB block archive; empty disables archiving
	Difficulty      int    // leading zero hex digits required of mined hashes
	MiningReward    int64  // fixed reward issued per mined block
	MaxMineAttempts uint64 // bound on the nonce search
	SelfCheck       bool   // decrypt-after-encrypt audit step
}

const (
	defaultKeysDir         = "keys"
	defaultRecordsPath     = "records.json"
	defaultDifficulty      = 0
	defaultMiningReward    = 100
	defaultMaxMineAttempts = 1_000_000
)

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{
		KeysDir:         envOr("CIPHERLEDGER_KEYS_DIR", defaultKeysDir),
		RecordsPath:     envOr("CIPHERLEDGER_RECORDS_PATH", defaultRecordsPath),
		DBPath:          os.Getenv("CIPHERLEDGER_DB_PATH"),
		Difficulty:      defaultDifficulty,
		MiningReward:    defaultMiningReward,
		MaxMineAttempts: defaultMaxMineAttempts,
		SelfCheck:       true,
	}

	if val := os.Getenv("CIPHERLEDGER_DIFFICULTY"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CIPHERLEDGER_DIFFICULTY %q", val)
		}
		cfg.Difficulty = n
	}
	if val := os.Getenv("CIPHERLEDGER_MINING_REWARD"); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CIPHERLEDGER_MINING_REWARD %q", val)
		}
		cfg.MiningReward = n
	}
	if val := os.Getenv("CIPHERLEDGER_MAX_MINE_ATTEMPTS"); val != "" {
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid CIPHERLEDGER_MAX_MINE_ATTEMPTS %q", val)
		}
		cfg.MaxMineAttempts = n
	}
	if val := os.Getenv("CIPHERLEDGER_SELF_CHECK"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid CIPHERLEDGER_SELF_CHECK %q", val)
		}
		cfg.SelfCheck = b
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
