package power

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alinuxperson/tuxvantage/pkg/acpi"
	"github.com/alinuxperson/tuxvantage/pkg/config"
	"github.com/alinuxperson/tuxvantage/pkg/profile"
)

// Feature is one of the two mutually exclusive battery features. The
// handler policy resolver is written against this interface so it stays
// feature-agnostic and testable without hardware.
type Feature interface {
	Name() string
	Enabled() (bool, error)
	Enable() error
	Disable() error
}

// ConflictError is returned by HandlerError when the conflicting
// feature is enabled. It names both features.
type ConflictError struct {
	Requested   string
	Conflicting string
}

func (e *ConflictError) Error() string {
	return "cannot enable " + e.Requested + ": " + e.Conflicting + " is enabled"
}

// EnableExclusive enables requested, resolving a live conflict with the
// given handler:
//
//   - conflicting disabled: enable unconditionally, handler irrelevant
//   - HandlerSwitch: disable conflicting first, then enable; the first
//     failure aborts before the second step
//   - HandlerIgnore: enable anyway and warn about hardware stress
//   - HandlerError: no toggle call, return a ConflictError
func EnableExclusive(requested, conflicting Feature, handler config.Handler) error {
	enabled, err := conflicting.Enabled()
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to get %s value", conflicting.Name())
	}

	if enabled {
		switch handler {
		case config.HandlerError:
			return &ConflictError{Requested: requested.Name(), Conflicting: conflicting.Name()}
		case config.HandlerIgnore:
			logrus.Warnf("enabling %s while %s is enabled; this may strain the battery", requested.Name(), conflicting.Name())
		case config.HandlerSwitch:
			if err := conflicting.Disable(); err != nil {
				return pkgerrors.Wrapf(err, "failed to disable %s", conflicting.Name())
			}
		}
	}

	if err := requested.Enable(); err != nil {
		return pkgerrors.Wrapf(err, "failed to enable %s", requested.Name())
	}

	return nil
}

// Toggle is one battery feature of the active profile.
type Toggle struct {
	name       string
	caller     acpi.Caller
	setCommand string
	feature    profile.FeatureCommands
	conflict   func() *Toggle
}

func (t *Toggle) Name() string {
	return t.name
}

// Enabled reads the feature's hardware state.
func (t *Toggle) Enabled() (bool, error) {
	value, err := t.caller.Call(t.feature.GetCommand)
	if err != nil {
		return false, err
	}
	return value == 1, nil
}

// Disabled is the negation of Enabled.
func (t *Toggle) Disabled() (bool, error) {
	enabled, err := t.Enabled()
	return !enabled, err
}

// Enable flips the feature on without consulting any handler.
func (t *Toggle) Enable() error {
	_, err := t.caller.Call(t.setCommand, t.feature.Parameters.Enable)
	return err
}

// Disable flips the feature off. Disabling never conflicts.
func (t *Toggle) Disable() error {
	_, err := t.caller.Call(t.setCommand, t.feature.Parameters.Disable)
	return err
}

// EnableWith enables the feature through the handler policy resolver,
// against its conflicting twin.
func (t *Toggle) EnableWith(handler config.Handler) error {
	return EnableExclusive(t, t.conflict(), handler)
}
