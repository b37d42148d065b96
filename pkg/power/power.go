// Package power drives the hardware power-management features of the
// active profile: the battery conservation and rapid charge toggles,
// which are mutually exclusive in effect, and the system performance
// mode.
package power

import (
	"github.com/alinuxperson/tuxvantage/pkg/acpi"
	"github.com/alinuxperson/tuxvantage/pkg/profile"
)

// Controller issues the active profile's hardware commands through an
// ACPI caller.
type Controller struct {
	caller  acpi.Caller
	profile *profile.Profile
}

// New returns a controller for the given profile.
func New(caller acpi.Caller, p *profile.Profile) *Controller {
	return &Controller{caller: caller, profile: p}
}

// Profile returns the profile the controller operates with.
func (c *Controller) Profile() *profile.Profile {
	return c.profile
}

// Conservation returns the battery conservation toggle. Its conflicting
// feature is rapid charge.
func (c *Controller) Conservation() *Toggle {
	return &Toggle{
		name:       "battery conservation",
		caller:     c.caller,
		setCommand: c.profile.Battery.SetCommand,
		feature:    c.profile.Battery.Conservation,
		conflict:   c.RapidCharge,
	}
}

// RapidCharge returns the rapid charge toggle. Its conflicting feature
// is battery conservation.
func (c *Controller) RapidCharge() *Toggle {
	return &Toggle{
		name:       "rapid charge",
		caller:     c.caller,
		setCommand: c.profile.Battery.SetCommand,
		feature:    c.profile.Battery.RapidCharge,
		conflict:   c.Conservation,
	}
}
