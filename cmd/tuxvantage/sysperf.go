package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alinuxperson/tuxvantage/pkg/power"
)

func (a *app) newSystemPerformanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "system-performance",
		Aliases: []string{"sysperf", "sp", "s"},
		Short:   "Manage the system performance mode",
		Long: `The system performance mode trades cooling and power draw for
performance: intelligent cooling, extreme performance, or battery
saving.`,
		GroupID: gFeatures,
	}

	cmd.AddCommand(
		a.newSystemPerformanceGetCommand(),
		a.newSystemPerformanceSetCommand(),
	)

	return cmd
}

func (a *app) newSystemPerformanceGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get",
		Aliases: []string{"g"},
		Short:   "Get the current system performance mode",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			mode, err := a.controller.SystemPerformance().Get()
			if err != nil {
				return withACPITip(err)
			}

			if a.machine {
				emitSuccess(map[string]string{"mode": mode.String()})
				return nil
			}
			logrus.Infof("the current system performance mode is %s", bold(mode))

			return nil
		},
	}
}

func (a *app) newSystemPerformanceSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <mode>",
		Aliases: []string{"s"},
		Short:   "Set the system performance mode",
		Long: `Set the system performance mode. Accepted modes are
intelligent-cooling (ic), extreme-performance (ep) and battery-saving
(bs).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := power.ParseMode(args[0])
			if err != nil {
				return err
			}

			if err := a.controller.SystemPerformance().Set(mode); err != nil {
				return withACPITip(err)
			}

			if a.machine {
				emitSuccess(nil)
				return nil
			}
			logrus.Infof("set the system performance mode to %s", bold(mode))

			return nil
		},
	}
}
