package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/session"
)

func setupLogging(cfg *config.Config) error {
	logLevel := logrus.InfoLevel
	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if cfg.Development() {
		logLevel = logrus.DebugLevel
		formatter = &logrus.TextFormatter{ForceColors: true}
	}

	loggers := []*logrus.Logger{log, mines.Log, session.Log}
	for _, l := range loggers {
		l.SetLevel(logLevel)
		l.SetFormatter(formatter)
	}

	if cfg.Log.File == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
	}
	for _, l := range loggers {
		l.AddHook(hook)
	}
	return nil
}
