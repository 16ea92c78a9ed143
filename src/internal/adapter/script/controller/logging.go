package controller

import (
	"github.com/api-sage/temporal-ledger/src/internal/logger"
)

func logOperation(name string, args []string, result string) {
	logger.Info("script operation", logger.Fields{
		"operation": name,
		"args":      logger.SanitizePayload(args),
		"result":    result,
	})
}
