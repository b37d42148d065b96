// Package battery adapts the system battery source to the regulation
// loop: enumeration with per-battery error collection, a selection
// predicate, and charge rounding.
package battery

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	dbattery "github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"

	"github.com/alinuxperson/tuxvantage/pkg/config"
)

const powerSupplyDir = "/sys/class/power_supply"

// Battery is one discovered battery with its identity and a live
// charge handle.
type Battery struct {
	Index        int
	Vendor       string
	Model        string
	SerialNumber string

	bat *dbattery.Battery
}

// Charge returns the charge fraction in [0.0, 1.0] as of the last
// refresh.
func (b *Battery) Charge() float64 {
	if b.bat == nil || b.bat.Full == 0 {
		return 0
	}
	return b.bat.Current / b.bat.Full
}

// Percentage returns the charge rounded half-away-from-zero to an
// integer percentage.
func (b *Battery) Percentage() int {
	return int(math.Round(b.Charge() * 100))
}

// Refresh re-reads the charge state. Failures leave the previous state
// in place.
func (b *Battery) Refresh() error {
	bat, err := dbattery.Get(b.Index)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to refresh battery #%d", b.Index)
	}
	b.bat = bat

	return nil
}

// All enumerates the discoverable batteries. Batteries the source
// failed to report are skipped and returned as individual errors; a
// failure of the enumeration itself is the third return.
func All() ([]*Battery, []error, error) {
	bats, err := dbattery.GetAll()

	var perBattery dbattery.Errors
	switch e := err.(type) {
	case nil:
	case dbattery.Errors:
		perBattery = e
	default:
		return nil, nil, pkgerrors.Wrap(err, "failed to get list of batteries")
	}

	identities := identities()

	var (
		out  []*Battery
		errs []error
	)
	for i, bat := range bats {
		if i < len(perBattery) && perBattery[i] != nil {
			errs = append(errs, pkgerrors.Wrapf(perBattery[i], "failed to get battery #%d", i))
			continue
		}

		b := &Battery{Index: i, bat: bat}
		if i < len(identities) {
			b.Vendor = identities[i].vendor
			b.Model = identities[i].model
			b.SerialNumber = identities[i].serial
		}
		out = append(out, b)
	}

	return out, errs, nil
}

// Find returns the first battery satisfying the predicate. Any
// enumeration error is fatal. A nil battery with a nil error means
// nothing matched.
func Find(m config.BatteryMatches) (*Battery, error) {
	batteries, errs, err := All()
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, pkgerrors.Wrap(errs[0], "failed to get battery")
	}

	return match(batteries, m), nil
}

// FindInfallible is Find with enumeration errors collected instead of
// aborting the search.
func FindInfallible(m config.BatteryMatches) (*Battery, []error) {
	batteries, errs, err := All()
	if err != nil {
		return nil, append(errs, err)
	}

	return match(batteries, m), errs
}

func match(batteries []*Battery, m config.BatteryMatches) *Battery {
	for _, b := range batteries {
		if m.Matches(b.Index, b.Vendor, b.Model, b.SerialNumber) {
			return b
		}
	}
	return nil
}

type identity struct {
	vendor, model, serial string
}

// identities reads vendor/model/serial from sysfs, best effort. The
// charge source does not expose identity strings, so they come straight
// from the power-supply class; missing attributes stay empty.
func identities() []identity {
	entries, err := os.ReadDir(powerSupplyDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		kind, err := os.ReadFile(filepath.Join(powerSupplyDir, entry.Name(), "type"))
		if err != nil || strings.TrimSpace(string(kind)) != "Battery" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	out := make([]identity, 0, len(names))
	for _, name := range names {
		out = append(out, identity{
			vendor: sysfsAttr(name, "manufacturer"),
			model:  sysfsAttr(name, "model_name"),
			serial: sysfsAttr(name, "serial_number"),
		})
	}

	return out
}

func sysfsAttr(name, attr string) string {
	b, err := os.ReadFile(filepath.Join(powerSupplyDir, name, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
