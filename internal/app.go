// Package internal provides the App struct that wires all components of
// TaskBoard together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/valter-silva-au/taskboard/internal/cli"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// HomeEnvVar overrides the base path lookup.
const HomeEnvVar = "TASKBOARD_HOME"

// App holds all service dependencies for TaskBoard.
type App struct {
	BasePath string
	Session  string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.BoardConfig

	// Logging
	Logger  *log.Logger
	logFile *os.File

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of TaskBoard. basePath is the
// directory holding .taskboard.yaml and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{
		BasePath: basePath,
		Session:  uuid.NewString(),
	}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.Config = cfg

	// --- Logging ---
	logOpts := observability.DefaultLogOptions()
	logOpts.Level = cfg.Log.Level
	logOpts.Format = cfg.Log.Format
	if cfg.Log.File != "" {
		app.Logger, app.logFile, err = observability.OpenLogFile(resolvePath(basePath, cfg.Log.File), logOpts)
	} else {
		app.Logger, err = observability.NewLogger(os.Stderr, logOpts)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	app.Logger = app.Logger.With("session", app.Session[:8])

	// --- Observability ---
	if cfg.Events.Enabled {
		eventLogPath := resolvePath(basePath, cfg.Events.Path)
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: run without an event log.
			app.Logger.Warn("event log disabled", "path", eventLogPath, "err", err)
			app.EventLog = nil
		}
	}
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
		evtAdapter = &eventLogAdapter{log: app.EventLog, session: app.Session}
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.Logger = app.Logger
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.NewBoard = func(variant models.Variant, idGen core.TaskIDGenerator) *core.TaskBoard {
		return core.NewTaskBoard(core.BoardOptions{
			Variant: variant,
			IDGen:   idGen,
			Events:  evtAdapter,
			Logger:  app.Logger,
		})
	}

	return app, nil
}

// Close releases resources held by the App, such as the event log and log
// file handles. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	var firstErr error
	if a.EventLog != nil {
		if err := a.EventLog.Close(); err != nil {
			firstErr = err
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveBasePath determines the base path for TaskBoard's files. It checks
// the TASKBOARD_HOME env var, then the nearest directory containing
// .taskboard.yaml, then falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	configName := core.ConfigFileName + ".yaml"
	for {
		if _, err := os.Stat(filepath.Join(dir, configName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// resolvePath joins relative paths onto basePath.
func resolvePath(basePath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger and
// stamps every event with the process session id.
type eventLogAdapter struct {
	log     observability.EventLog
	session string
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	level := "INFO"
	if eventType == "drop.ignored" {
		level = "WARN"
	}
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Session: a.session,
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
