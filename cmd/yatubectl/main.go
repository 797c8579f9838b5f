// Command yatubectl runs schema migrations and manages groups.
package main

import (
	"os"
	"yatube/internal/config"
	"yatube/internal/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, "text")

	if err := newRootCmd(cfg).Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
