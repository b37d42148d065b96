package main

import (
	"github.com/spf13/cobra"

	"github.com/alinuxperson/tuxvantage/pkg/config"
	"github.com/alinuxperson/tuxvantage/pkg/power"
)

func (a *app) newRapidChargeCommand() *cobra.Command {
	f := feature{
		app:    a,
		name:   "rapid charge",
		toggle: func() *power.Toggle { return a.controller.RapidCharge() },
		setOverride: func(h *config.Handlers, handler config.Handler) {
			h.RapidCharge = &handler
		},
		resolveHandler: func(h config.Handlers) config.Handler {
			return h.ResolveRapidCharge()
		},
	}

	cmd := &cobra.Command{
		Use:     "rapid-charge",
		Aliases: []string{"rc", "r"},
		Short:   "Manage rapid charging",
		Long: `Rapid charging raises the charge rate at the cost of battery wear. It
conflicts with battery conservation mode; the handler decides what
happens when both are requested.`,
		GroupID: gFeatures,
	}

	cmd.AddCommand(
		f.newEnabledCommand(),
		f.newDisabledCommand(),
		f.newEnableCommand(),
		f.newDisableCommand(),
	)

	return cmd
}
