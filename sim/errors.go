package sim

import "github.com/pkg/errors"

// Command rejections. They leave the controller state unchanged.
var (
	ErrEmptyField        = errors.New("game field is empty")
	ErrAlreadyRunning    = errors.New("simulation is already running")
	ErrNotRunning        = errors.New("simulation is not running")
	ErrRunning           = errors.New("simulation is running")
	ErrPauseDisabled     = errors.New("pausing is disabled")
	ErrRandomizeDisabled = errors.New("random fill is disabled")
)
