package cli

import (
	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// BoardFactory builds a TaskBoard wired to the application's event log and
// logger.
type BoardFactory func(variant models.Variant, idGen core.TaskIDGenerator) *core.TaskBoard

// Service instances, set during app initialization in app.go.
var (
	BasePath    string
	Config      *models.BoardConfig
	Logger      *log.Logger
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	NewBoard    BoardFactory
)

// newBoard calls NewBoard, falling back to an unwired board when the
// application has not been initialized (e.g. in tests).
func newBoard(variant models.Variant, idGen core.TaskIDGenerator) *core.TaskBoard {
	if NewBoard != nil {
		return NewBoard(variant, idGen)
	}
	return core.NewTaskBoard(core.BoardOptions{Variant: variant, IDGen: idGen, Logger: Logger})
}

// currentConfig returns Config, or defaults when it is unset.
func currentConfig() *models.BoardConfig {
	if Config != nil {
		return Config
	}
	return core.DefaultConfig()
}
