package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rdo34/todo/internal/app"
	"github.com/rdo34/todo/internal/config"
	"github.com/rdo34/todo/internal/store"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataDir    string
	backend    string
}

// session is a loaded App plus the resources to release afterwards.
type session struct {
	cfg     *config.Config
	state   *app.App
	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Storage.Dir = opts.dataDir
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	return cfg, nil
}

func openSession(opts *rootOptions) (*session, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	backend, err := store.ParseBackend(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	st, closer, err := store.Open(backend, cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closer)

	// The log file lives next to the data unless configured elsewhere.
	dir := cfg.Storage.Dir
	if dir == "" && backend != store.BackendMemory {
		if dir, err = store.ResolveDataDir(); err != nil {
			s.Close()
			return nil, err
		}
	}

	logger, logCloser, err := openLogger(cfg.Log.File, dir)
	if err != nil {
		s.Close()
		return nil, err
	}
	if logCloser != nil {
		s.closers = append(s.closers, logCloser)
	}

	s.state = app.New(st, app.WithLogger(logger))
	if err := s.state.Load(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return s, nil
}

// openLogger appends to path, or to <dir>/todo.log when path is empty.
// With neither, logs are discarded.
func openLogger(path, dir string) (*log.Logger, io.Closer, error) {
	if path == "" {
		if dir == "" {
			return log.New(io.Discard, "", 0), nil, nil
		}
		path = filepath.Join(dir, "todo.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, "todo ", log.LstdFlags), f, nil
}
