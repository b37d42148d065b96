package battery

import (
	"testing"

	dbattery "github.com/distatus/battery"
	"github.com/stretchr/testify/assert"

	"github.com/alinuxperson/tuxvantage/pkg/config"
)

func TestPercentageRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		full    float64
		want    int
	}{
		{name: "exact", current: 80, full: 100, want: 80},
		{name: "rounds down", current: 804, full: 1000, want: 80},
		{name: "half rounds up", current: 805, full: 1000, want: 81},
		{name: "rounds up", current: 806, full: 1000, want: 81},
		{name: "full", current: 1000, full: 1000, want: 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &Battery{bat: &dbattery.Battery{Current: c.current, Full: c.full}}
			assert.Equal(t, c.want, b.Percentage())
		})
	}
}

func TestChargeWithoutHandleIsZero(t *testing.T) {
	assert.Equal(t, 0.0, (&Battery{}).Charge())
	assert.Equal(t, 0, (&Battery{}).Percentage())
}

func TestMatchSelectsByPredicate(t *testing.T) {
	batteries := []*Battery{
		{Index: 0, Vendor: "LGC", Model: "L19M3PF4", SerialNumber: "1111"},
		{Index: 1, Vendor: "SMP", Model: "L19M3PF5", SerialNumber: "2222"},
	}

	cases := []struct {
		name    string
		matches config.BatteryMatches
		want    int // index of the expected battery, -1 for none
	}{
		{name: "first", matches: config.BatteryMatches{Kind: config.MatchFirst}, want: 0},
		{name: "index", matches: config.BatteryMatches{Kind: config.MatchIndex, Index: 1}, want: 1},
		{name: "vendor", matches: config.BatteryMatches{Kind: config.MatchVendor, Value: "SMP"}, want: 1},
		{name: "model", matches: config.BatteryMatches{Kind: config.MatchModel, Value: "L19M3PF4"}, want: 0},
		{name: "serial number", matches: config.BatteryMatches{Kind: config.MatchSerialNumber, Value: "2222"}, want: 1},
		{name: "no match", matches: config.BatteryMatches{Kind: config.MatchVendor, Value: "ACME"}, want: -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := match(batteries, c.matches)
			if c.want == -1 {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, batteries[c.want], got)
		})
	}
}
