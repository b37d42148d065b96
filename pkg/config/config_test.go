package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alinuxperson/tuxvantage/pkg/utils/ptr"
)

func TestResolveProfilePrecedence(t *testing.T) {
	cases := []struct {
		name      string
		override  *string
		persisted *string
		want      string
	}{
		{name: "nothing set means auto-detect", want: ""},
		{name: "persisted wins over default", persisted: ptr.To("ideapad-15iil05"), want: "ideapad-15iil05"},
		{name: "override wins over persisted", override: ptr.To("ideapad-amd"), persisted: ptr.To("ideapad-15iil05"), want: "ideapad-amd"},
		{name: "empty override still wins", override: ptr.To(""), persisted: ptr.To("ideapad-15iil05"), want: ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tux := TuxVantage{Profile: c.persisted}
			tux.Overrides.Profile = c.override

			assert.Equal(t, c.want, tux.ResolveProfile())
		})
	}
}

func TestResolveMachinePrecedence(t *testing.T) {
	tux := TuxVantage{}
	assert.Equal(t, MachineAuto, tux.ResolveMachine())

	tux.Machine = ptr.To(MachineAlways)
	assert.Equal(t, MachineAlways, tux.ResolveMachine())

	tux.Overrides.Machine = ptr.To(MachineNever)
	assert.Equal(t, MachineNever, tux.ResolveMachine())
}

func TestResolvePanicIsOrOfLayers(t *testing.T) {
	cases := []struct {
		name      string
		override  bool
		persisted bool
		want      bool
	}{
		{name: "both off", want: false},
		{name: "persisted on", persisted: true, want: true},
		{name: "override on", override: true, want: true},
		{name: "both on", override: true, persisted: true, want: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tux := TuxVantage{Panic: c.persisted}
			tux.Overrides.Panic = c.override

			assert.Equal(t, c.want, tux.ResolvePanic())
		})
	}
}

func TestResolveBacktraceMergesHalves(t *testing.T) {
	tux := TuxVantage{Backtrace: Backtrace{Panics: true}}
	tux.Overrides.Backtrace = Backtrace{Errors: true}

	assert.Equal(t, Backtrace{Panics: true, Errors: true}, tux.ResolveBacktrace())
}

func TestResolveHandlersFieldByField(t *testing.T) {
	tux := TuxVantage{
		Handlers: Handlers{
			Default:     ptr.To(HandlerError),
			RapidCharge: ptr.To(HandlerIgnore),
		},
	}
	tux.Overrides.Handlers.RapidCharge = ptr.To(HandlerSwitch)

	merged := tux.ResolveHandlers()

	// The override replaces only the field it sets.
	assert.Equal(t, HandlerSwitch, merged.ResolveRapidCharge())
	// Unset specific handlers fall back to the declared default.
	assert.Equal(t, HandlerError, merged.ResolveBatteryConservation())
	assert.Equal(t, HandlerError, merged.ResolveDefault())
}

func TestResolveHandlersDefaultsToSwitch(t *testing.T) {
	var tux TuxVantage

	merged := tux.ResolveHandlers()

	assert.Equal(t, HandlerSwitch, merged.ResolveDefault())
	assert.Equal(t, HandlerSwitch, merged.ResolveBatteryConservation())
	assert.Equal(t, HandlerSwitch, merged.ResolveRapidCharge())
}

func TestResolveBatteryFieldByField(t *testing.T) {
	tux := TuxVantage{
		Battery: BatteryOptions{
			Threshold: ptr.To(BatteryLevel(70)),
			Matches:   &BatteryMatches{Kind: MatchIndex, Index: 1},
		},
	}
	tux.Overrides.Battery.Threshold = ptr.To(BatteryLevel(90))
	tux.Overrides.Battery.Infallible = true

	merged := tux.ResolveBattery()

	assert.Equal(t, BatteryLevel(90), merged.ResolveThreshold())
	assert.Equal(t, BatteryMatches{Kind: MatchIndex, Index: 1}, merged.ResolveMatches())
	assert.Equal(t, DefaultCoolDown, merged.ResolveCooldown())
	assert.True(t, merged.Infallible)
}
