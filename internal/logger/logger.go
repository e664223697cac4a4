package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init replaces the global zap logger. Development builds get a human
// readable console logger.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "development", "test":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
