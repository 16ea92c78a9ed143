package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultDailyWithdrawalLimit = "5000.00"

type Config struct {
	DailyWithdrawalLimit string
	ScriptPath           string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	limit := strings.TrimSpace(os.Getenv("DAILY_WITHDRAWAL_LIMIT"))
	if limit == "" {
		limit = defaultDailyWithdrawalLimit
	}

	return Config{
		DailyWithdrawalLimit: limit,
		ScriptPath:           strings.TrimSpace(os.Getenv("LEDGER_SCRIPT")),
	}, nil
}
