package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/codefionn/fsgate/internal/audit"
	"github.com/codefionn/fsgate/internal/config"
	"github.com/codefionn/fsgate/internal/lockfile"
	"github.com/codefionn/fsgate/internal/logger"
	"github.com/codefionn/fsgate/internal/ops"
	"github.com/codefionn/fsgate/internal/sandbox"
	"github.com/codefionn/fsgate/internal/server"
	"github.com/codefionn/fsgate/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	var (
		flagRoot     = flag.String("root", "", "directory to confine all operations to (default: working directory)")
		flagAddr     = flag.String("addr", "", "listen address, e.g. localhost:8937")
		flagConfig   = flag.String("config", config.GetConfigPath(), "path to the config file")
		flagLogLevel = flag.String("log-level", "", "log level: debug, info, warn, error, none")
		flagLogPath  = flag.String("log-path", "", "log file path (empty disables file logging)")
		flagAuditDB  = flag.String("audit-db", "", "sqlite database recording writes and deletes")
		flagNoLock   = flag.Bool("no-landlock", false, "disable kernel-level Landlock hardening")
	)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override the config file.
	if *flagRoot != "" {
		cfg.RootDir = *flagRoot
	}
	if *flagAddr != "" {
		cfg.ListenAddr = *flagAddr
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
	if *flagLogPath != "" {
		cfg.LogPath = *flagLogPath
	}
	if *flagAuditDB != "" {
		cfg.AuditDBPath = *flagAuditDB
	}
	if *flagNoLock {
		cfg.Sandbox.DisableLandlock = true
	}
	if envLevel := strings.TrimSpace(os.Getenv("FSGATE_LOG_LEVEL")); envLevel != "" {
		cfg.LogLevel = envLevel
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogPath); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err != nil {
			logger.Error("fatal: %v", err)
		}
		if closeErr := logger.Global().Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", closeErr)
		}
	}()

	root, err := sandbox.NewRoot(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("failed to open root: %w", err)
	}
	logger.Info("confining operations to %s", root.Path())

	lockDir := os.TempDir()
	if cfg.LogPath != "" {
		lockDir = filepath.Dir(cfg.LogPath)
	}
	lock := lockfile.New(lockfile.PathForRoot(lockDir, root.Path()))
	if err := lock.TryAcquire(); err != nil {
		return err
	}
	defer lock.Release()

	var journal *audit.Journal
	if cfg.AuditDBPath != "" {
		journal, err = audit.Open(cfg.AuditDBPath)
		if err != nil {
			return fmt.Errorf("failed to open audit journal: %w", err)
		}
		defer journal.Close()
	}

	if !cfg.Sandbox.DisableLandlock {
		// The logger, the lock and the journal live outside the root and
		// still need write access after the restriction takes effect.
		extraRW := []string{lockDir}
		if cfg.LogPath != "" && filepath.Dir(cfg.LogPath) != lockDir {
			extraRW = append(extraRW, filepath.Dir(cfg.LogPath))
		}
		if cfg.AuditDBPath != "" {
			extraRW = append(extraRW, filepath.Dir(cfg.AuditDBPath))
		}
		if err := sandbox.RestrictProcess(root, extraRW, cfg.Sandbox.BestEffort); err != nil {
			return fmt.Errorf("failed to apply landlock restriction: %w", err)
		}
	}

	svc := ops.NewService(sandbox.NewResolver(root), journalOrNil(journal), cfg.MaxGrepResults)
	registry := tools.NewDefaultRegistry(svc)
	srv := server.NewServer(registry, root.Path(), cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if serveErr := srv.Start(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received %v, shutting down", sig)
	}

	return srv.Stop()
}

// journalOrNil avoids handing the service a non-nil interface holding a nil
// pointer.
func journalOrNil(j *audit.Journal) ops.Journal {
	if j == nil {
		return nil
	}
	return j
}
