package main

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alinuxperson/tuxvantage/pkg/battery"
	"github.com/alinuxperson/tuxvantage/pkg/config"
	"github.com/alinuxperson/tuxvantage/pkg/power"
	"github.com/alinuxperson/tuxvantage/pkg/regulate"
)

func (a *app) newConservationCommand() *cobra.Command {
	f := feature{
		app:    a,
		name:   "battery conservation mode",
		toggle: func() *power.Toggle { return a.controller.Conservation() },
		setOverride: func(h *config.Handlers, handler config.Handler) {
			h.BatteryConservation = &handler
		},
		resolveHandler: func(h config.Handlers) config.Handler {
			return h.ResolveBatteryConservation()
		},
	}

	cmd := &cobra.Command{
		Use:     "conservation",
		Aliases: []string{"bcm", "bc", "b"},
		Short:   "Manage battery conservation mode",
		Long: `Battery conservation mode caps the charge at around 60% to preserve
battery health when the machine stays plugged in. It conflicts with
rapid charging; the handler decides what happens when both are
requested.`,
		GroupID: gFeatures,
	}

	cmd.AddCommand(
		f.newEnabledCommand(),
		f.newDisabledCommand(),
		f.newEnableCommand(),
		f.newDisableCommand(),
		a.newRegulateCommand(f),
	)

	return cmd
}

func (a *app) newRegulateCommand(f feature) *cobra.Command {
	var (
		thresholdFlag  string
		cooldownFlag   string
		matchesFlag    string
		infallibleFlag bool
		installFlag    bool
	)

	cmd := &cobra.Command{
		Use:     "regulate",
		Aliases: []string{"r"},
		Short:   "Regulate battery conservation mode against a charge threshold",
		Long: `Regulate polls the battery and keeps conservation mode enabled while
the charge is at or above the threshold, disabling it below. On SIGINT
or SIGTERM it enables conservation one last time and exits cleanly, so
an unattended machine is never left charging to full.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if installFlag {
				return regulate.Install(cmd.Context(), a.paths.ConsistencyFile())
			}

			overrides := regulateOverrides{
				threshold:  thresholdFlag,
				cooldown:   cooldownFlag,
				matches:    matchesFlag,
				infallible: infallibleFlag,
				changed:    cmd.Flags().Changed,
			}
			if err := a.applyRegulateOverrides(overrides); err != nil {
				return err
			}

			view := a.store.Read()
			options := view.TuxVantage().ResolveBattery()
			handler := view.TuxVantage().ResolveHandlers().ResolveBatteryConservation()
			view.Close()

			bat, err := findBattery(options)
			if err != nil {
				return err
			}

			loop := &regulate.Loop{
				Battery:      bat,
				Conservation: f.toggle(),
				Threshold:    options.ResolveThreshold(),
				Cooldown:     options.ResolveCooldown(),
				Handler:      handler,
			}

			return withACPITip(loop.Run())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&thresholdFlag, "threshold", "t", "", "battery percentage at which conservation turns on (default \"80%\")")
	flags.StringVarP(&cooldownFlag, "cooldown", "c", "", "seconds to sleep between polls (default \"60\")")
	flags.StringVarP(&matchesFlag, "matches", "m", "", "battery selector as kind=value (kinds: first, index, vendor, model, serial_number)")
	flags.BoolVarP(&infallibleFlag, "infallible", "i", false, "keep searching for a battery past per-battery errors")
	flags.BoolVarP(&installFlag, "install", "I", false, "install the regulator as a systemd service instead of running it")

	return cmd
}

type regulateOverrides struct {
	threshold  string
	cooldown   string
	matches    string
	infallible bool
	changed    func(string) bool
}

func (a *app) applyRegulateOverrides(o regulateOverrides) error {
	view := a.store.Write()
	defer view.Close()

	overrides := &view.TuxVantage().Overrides.Battery

	if o.changed("threshold") {
		threshold, err := config.ParseBatteryLevel(o.threshold)
		if err != nil {
			return err
		}
		overrides.Threshold = &threshold
	}
	if o.changed("cooldown") {
		cooldown, err := config.ParseCoolDown(o.cooldown)
		if err != nil {
			return err
		}
		overrides.Cooldown = &cooldown
	}
	if o.changed("matches") {
		matches, err := config.ParseBatteryMatches(o.matches)
		if err != nil {
			return err
		}
		overrides.Matches = &matches
	}
	overrides.Infallible = overrides.Infallible || o.infallible

	return nil
}

// findBattery selects the battery to regulate, honoring the infallible
// toggle. When nothing matches, the discoverable batteries are listed
// so the user can build a working selector.
func findBattery(options config.BatteryOptions) (*battery.Battery, error) {
	matches := options.ResolveMatches()

	var (
		bat  *battery.Battery
		errs []error
		err  error
	)
	if options.Infallible {
		bat, errs = battery.FindInfallible(matches)
		for _, e := range errs {
			logrus.Warnf("%v", e)
		}
	} else {
		bat, err = battery.Find(matches)
		if err != nil {
			return nil, err
		}
	}

	if bat == nil {
		listBatteries()
		return nil, pkgerrors.Errorf("no battery matched the selector \"%s\"", matches)
	}

	return bat, nil
}

func listBatteries() {
	batteries, errs, err := battery.All()
	if err != nil {
		logrus.Warnf("failed to list batteries: %v", err)
		return
	}
	for _, e := range errs {
		logrus.Warnf("%v", e)
	}

	logrus.Info("discoverable batteries:")
	for _, b := range batteries {
		label := bold("#", b.Index)
		if b.Index == 0 {
			label += " (first)"
		}
		logrus.Infof("%s vendor=%s model=%s serial_number=%s",
			label, orNA(b.Vendor), orNA(b.Model), orNA(b.SerialNumber))
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
