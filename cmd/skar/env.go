package main

import (
	"fmt"
	"log/slog"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/config"
	"github.com/Zuo-Peng/skype-archive/internal/index"
	"github.com/Zuo-Peng/skype-archive/internal/logutil"
)

var (
	archiveFlag  string
	logLevelFlag string
)

// env is what every command starts from: config with flag overrides applied
// and a logger built from it.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if archiveFlag != "" {
		cfg.OutputPath = archiveFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	logger, err := logutil.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) loadArchive() (*archive.Archive, error) {
	a, err := archive.Load(e.cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("load archive (run 'skar import' first): %w", err)
	}
	return a, nil
}

// loadIndex loads the archive and builds its search index.
func (e *env) loadIndex() (*archive.Archive, *index.DB, error) {
	a, err := e.loadArchive()
	if err != nil {
		return nil, nil, err
	}
	db, stats, err := index.Build(a)
	if err != nil {
		return nil, nil, fmt.Errorf("index: %w", err)
	}
	e.logger.Debug("index built", "chats", stats.Chats, "messages", stats.Messages)
	return a, db, nil
}
