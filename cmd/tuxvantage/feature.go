package main

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alinuxperson/tuxvantage/pkg/acpi"
	"github.com/alinuxperson/tuxvantage/pkg/config"
	"github.com/alinuxperson/tuxvantage/pkg/power"
	"github.com/alinuxperson/tuxvantage/pkg/tip"
)

// feature binds one battery toggle to its slot in the handler config.
// Conservation and rapid charge share every subcommand through it. The
// name is duplicated from the toggle because commands are constructed
// before the controller exists.
type feature struct {
	app *app

	name           string
	toggle         func() *power.Toggle
	setOverride    func(*config.Handlers, config.Handler)
	resolveHandler func(config.Handlers) config.Handler
}

// withACPITip decorates hardware errors whose remedy the user can act
// on.
func withACPITip(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, acpi.ErrKernelModuleNotLoaded):
		return tip.With(err, "this program requires the acpi_call kernel module; try running `modprobe acpi_call` as root")
	case errors.Is(err, acpi.ErrMethodNotFound):
		return tip.With(err, "the active profile may not match your machine; inspect the available profiles with `tuxvantage profiles get`")
	}

	return err
}

func (f feature) newEnabledCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "enabled",
		Aliases: []string{"ie", "g"},
		Short:   "Check if " + f.name + " is enabled",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return f.reportState()
		},
	}
}

func (f feature) newDisabledCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "disabled",
		Aliases: []string{"id"},
		Short:   "Check if " + f.name + " is disabled",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return f.reportState()
		},
	}
}

func (f feature) reportState() error {
	t := f.toggle()
	enabled, err := t.Enabled()
	if err != nil {
		return withACPITip(pkgerrors.Wrapf(err, "failed to get %s value", t.Name()))
	}

	if f.app.machine {
		emitSuccess(map[string]bool{"enabled": enabled})
		return nil
	}
	logrus.Infof("%s is %s", t.Name(), onOff(enabled))

	return nil
}

func (f feature) newEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "enable [handler]",
		Aliases: []string{"e"},
		Short:   "Enable " + f.name,
		Long: "Enable " + f.name + `. The optional handler argument decides
what happens when the conflicting feature is already enabled: "switch"
disables it first, "ignore" enables regardless, and "error" refuses.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				h, err := config.ParseHandler(args[0])
				if err != nil {
					return err
				}

				view := f.app.store.Write()
				f.setOverride(&view.TuxVantage().Overrides.Handlers, h)
				view.Close()
			}

			handler := f.handler()
			t := f.toggle()

			logrus.Debugf("enabling %s with the %s handler", t.Name(), handler)
			if err := t.EnableWith(handler); err != nil {
				return withACPITip(err)
			}

			f.reportToggled(t.Name(), true)

			return nil
		},
	}
}

func (f feature) newDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "disable",
		Aliases: []string{"d"},
		Short:   "Disable " + f.name,
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			t := f.toggle()
			if err := t.Disable(); err != nil {
				return withACPITip(pkgerrors.Wrapf(err, "failed to disable %s", t.Name()))
			}

			f.reportToggled(t.Name(), false)

			return nil
		},
	}
}

// handler resolves the effective conflict handler for this feature from
// the current config.
func (f feature) handler() config.Handler {
	view := f.app.store.Read()
	defer view.Close()

	return f.resolveHandler(view.TuxVantage().ResolveHandlers())
}

func (f feature) reportToggled(name string, enabled bool) {
	if f.app.machine {
		emitSuccess(nil)
		return
	}
	if enabled {
		logrus.Infof("enabled %s", name)
	} else {
		logrus.Infof("disabled %s", name)
	}
}
