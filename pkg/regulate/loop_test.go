package regulate

import (
	"os"
	"syscall"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alinuxperson/tuxvantage/pkg/config"
)

// scriptedCell serves a fixed sequence of battery levels; the last one
// repeats.
type scriptedCell struct {
	levels []int
	cursor int

	refreshed int
}

func (c *scriptedCell) Percentage() int {
	return c.levels[c.cursor]
}

func (c *scriptedCell) Refresh() error {
	c.refreshed++
	if c.cursor < len(c.levels)-1 {
		c.cursor++
	}
	return nil
}

// recordingConservation records enable/disable calls and can stop the
// loop by firing a signal after a set number of actions.
type recordingConservation struct {
	actions []string

	stopAfter int
	signals   chan os.Signal

	enableErr error
}

func (r *recordingConservation) EnableWith(config.Handler) error {
	if r.enableErr != nil {
		return r.enableErr
	}
	r.record("enable")
	return nil
}

func (r *recordingConservation) Disable() error {
	r.record("disable")
	return nil
}

func (r *recordingConservation) record(action string) {
	r.actions = append(r.actions, action)
	if r.signals != nil && len(r.actions) == r.stopAfter {
		r.signals <- syscall.SIGTERM
	}
}

func TestLoopTogglesAgainstThreshold(t *testing.T) {
	signals := make(chan os.Signal, 1)
	conservation := &recordingConservation{stopAfter: 3, signals: signals}
	cell := &scriptedCell{levels: []int{50, 85, 50}}

	loop := &Loop{
		Battery:      cell,
		Conservation: conservation,
		Threshold:    config.BatteryLevel(80),
		Cooldown:     config.CoolDown(time.Minute),
		Handler:      config.HandlerSwitch,
		Signals:      signals,
	}

	require.NoError(t, loop.Run())

	// 50 disables, 85 enables, 50 disables; the termination signal then
	// forces one final enable regardless of the last level.
	assert.Equal(t, []string{"disable", "enable", "disable", "enable"}, conservation.actions)
	assert.Equal(t, 3, cell.refreshed)
}

func TestLoopEnablesAtExactThreshold(t *testing.T) {
	signals := make(chan os.Signal, 1)
	conservation := &recordingConservation{stopAfter: 1, signals: signals}
	cell := &scriptedCell{levels: []int{80}}

	loop := &Loop{
		Battery:      cell,
		Conservation: conservation,
		Threshold:    config.BatteryLevel(80),
		Cooldown:     config.CoolDown(time.Minute),
		Handler:      config.HandlerSwitch,
		Signals:      signals,
	}

	require.NoError(t, loop.Run())

	assert.Equal(t, []string{"enable", "enable"}, conservation.actions)
}

func TestLoopPropagatesEnableFailure(t *testing.T) {
	conservation := &recordingConservation{enableErr: pkgerrors.New("acpi_call missing")}
	cell := &scriptedCell{levels: []int{90}}

	loop := &Loop{
		Battery:      cell,
		Conservation: conservation,
		Threshold:    config.BatteryLevel(80),
		Cooldown:     config.CoolDown(time.Minute),
		Handler:      config.HandlerSwitch,
		Signals:      make(chan os.Signal, 1),
	}

	require.Error(t, loop.Run())
	assert.Empty(t, conservation.actions)
}
