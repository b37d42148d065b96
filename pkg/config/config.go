// Package config holds the layered configuration: process-lifetime
// overrides over the persisted tuxvantage.json over compiled-in
// defaults. Resolution is strictly per field and computed on demand, so
// override mutations are visible immediately.
package config

// TuxVantage is the persisted configuration document. All fields are
// optional; absent fields fall through to the defaults at resolution
// time.
type TuxVantage struct {
	Profile   *string        `json:"profile,omitempty"`
	Machine   *Machine       `json:"machine,omitempty"`
	Panic     bool           `json:"panic,omitempty"`
	Handlers  Handlers       `json:"handlers,omitempty"`
	Backtrace Backtrace      `json:"backtrace,omitempty"`
	Battery   BatteryOptions `json:"battery,omitempty"`

	// Overrides are process-lifetime values set from invocation
	// arguments. Never persisted.
	Overrides Overrides `json:"-"`
}

// Overrides mirror the persisted fields and take precedence over them.
type Overrides struct {
	Profile   *string
	Machine   *Machine
	Panic     bool
	Handlers  Handlers
	Backtrace Backtrace
	Battery   BatteryOptions
}

// ResolveProfile returns the active profile name, or "" when none is
// configured and auto-detection should run.
func (t *TuxVantage) ResolveProfile() string {
	if t.Overrides.Profile != nil {
		return *t.Overrides.Profile
	}
	if t.Profile != nil {
		return *t.Profile
	}
	return ""
}

// ResolveMachine returns the machine-readable-output mode.
func (t *TuxVantage) ResolveMachine() Machine {
	if t.Overrides.Machine != nil {
		return *t.Overrides.Machine
	}
	if t.Machine != nil {
		return *t.Machine
	}
	return MachineAuto
}

// ResolvePanic returns the abort-on-error toggle. Either layer may turn
// it on.
func (t *TuxVantage) ResolvePanic() bool {
	return t.Overrides.Panic || t.Panic
}

// ResolveBacktrace merges the backtrace pair; either layer may enable
// each half.
func (t *TuxVantage) ResolveBacktrace() Backtrace {
	return Backtrace{
		Panics: t.Overrides.Backtrace.Panics || t.Backtrace.Panics,
		Errors: t.Overrides.Backtrace.Errors || t.Backtrace.Errors,
	}
}

// ResolveHandlers merges the handler choices field by field.
func (t *TuxVantage) ResolveHandlers() Handlers {
	merged := Handlers{
		Default:             t.Overrides.Handlers.Default,
		BatteryConservation: t.Overrides.Handlers.BatteryConservation,
		RapidCharge:         t.Overrides.Handlers.RapidCharge,
	}
	if merged.Default == nil {
		merged.Default = t.Handlers.Default
	}
	if merged.BatteryConservation == nil {
		merged.BatteryConservation = t.Handlers.BatteryConservation
	}
	if merged.RapidCharge == nil {
		merged.RapidCharge = t.Handlers.RapidCharge
	}

	return merged
}

// ResolveBattery merges the battery-targeting parameters field by
// field.
func (t *TuxVantage) ResolveBattery() BatteryOptions {
	merged := BatteryOptions{
		Matches:    t.Overrides.Battery.Matches,
		Infallible: t.Overrides.Battery.Infallible || t.Battery.Infallible,
		Threshold:  t.Overrides.Battery.Threshold,
		Cooldown:   t.Overrides.Battery.Cooldown,
	}
	if merged.Matches == nil {
		merged.Matches = t.Battery.Matches
	}
	if merged.Threshold == nil {
		merged.Threshold = t.Battery.Threshold
	}
	if merged.Cooldown == nil {
		merged.Cooldown = t.Battery.Cooldown
	}

	return merged
}
