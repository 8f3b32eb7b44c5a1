package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/cmd"
	"github.com/makwanadeepam/totxt/pkg/logging"
	"github.com/makwanadeepam/totxt/pkg/version"
)

func main() {
	logger, err := logging.Setup(logging.Options{
		Color:      logging.IsTerminal(os.Stderr),
		AppName:    "totxt",
		AppVersion: version.Get().Version,
	})
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
	}

	if err := cmd.Execute(logger); err != nil {
		logger.Error("totxt execution failed", zap.Error(err))
		syncLogger(logger)
		os.Exit(1)
	}
	syncLogger(logger)
}

// syncLogger flushes the logger when stderr can be synced.
func syncLogger(logger *zap.Logger) {
	if !logging.IsTerminal(os.Stderr) && !logging.IsRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}
