// Package regulate runs the long-lived battery regulation loop: poll
// the battery, flip conservation mode against a threshold, and leave
// the hardware in a safe state on any exit path.
package regulate

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alinuxperson/tuxvantage/pkg/config"
)

// Conservation is the slice of the feature controller the loop drives.
type Conservation interface {
	// EnableWith enables conservation through the handler policy
	// resolver.
	EnableWith(handler config.Handler) error
	Disable() error
}

// Cell is the battery handle owned by the loop.
type Cell interface {
	// Percentage is the rounded charge as of the last refresh.
	Percentage() int
	Refresh() error
}

// Loop is one configured regulation run. It owns its battery handle and
// hardware channel; nothing else touches them while it runs.
type Loop struct {
	Battery      Cell
	Conservation Conservation
	Threshold    config.BatteryLevel
	Cooldown     config.CoolDown
	Handler      config.Handler

	// Signals replaces the OS termination-signal source in tests. When
	// nil, Run listens for SIGINT and SIGTERM.
	Signals chan os.Signal
}

// Run blocks until a termination signal arrives. Each cycle compares
// the battery percentage against the threshold (>= enables
// conservation), refreshes the handle, then races the cooldown timer
// against the signal source. On a signal, conservation is enabled one
// final time, unconditionally, before returning.
func (l *Loop) Run() error {
	sigc := l.Signals
	if sigc == nil {
		sigc = make(chan os.Signal, 1)
		// Stays registered for the whole run; repeated signals after
		// the first are redundant notifications.
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
	}

	threshold := int(l.Threshold)

	logrus.Infof("the cooldown is %s second(s)", l.Cooldown)
	logrus.Infof("the threshold for the battery is %s", l.Threshold)

	for {
		level := l.Battery.Percentage()
		logrus.WithFields(logrus.Fields{
			"level":     level,
			"threshold": threshold,
		}).Info("polled battery")

		if level >= threshold {
			logrus.Info("battery level is greater than or equal to the threshold, enabling battery conservation mode")
			if err := l.Conservation.EnableWith(l.Handler); err != nil {
				return pkgerrors.Wrap(err, "failed to enable battery conservation")
			}
		} else {
			logrus.Info("battery level is less than the threshold, disabling battery conservation mode")
			if err := l.Conservation.Disable(); err != nil {
				return pkgerrors.Wrap(err, "failed to disable battery conservation")
			}
		}

		logrus.Debug("refreshing battery")
		if err := l.Battery.Refresh(); err != nil {
			logrus.Warnf("failed to refresh battery: %v", err)
		}

		logrus.Debugf("sleeping for %s second(s)", l.Cooldown)
		select {
		case <-time.After(l.Cooldown.Duration()):
		case sig := <-sigc:
			logrus.Infof("received signal \"%s\", exiting cleanly", sig)
			logrus.Info("enabling battery conservation mode")

			// Issued unconditionally: battery health wins on exit even
			// if conservation is believed to be on already.
			if err := l.Conservation.EnableWith(l.Handler); err != nil {
				return pkgerrors.Wrap(err, "failed to enable battery conservation")
			}

			return nil
		}
	}
}
