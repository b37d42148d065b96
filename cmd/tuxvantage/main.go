package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alinuxperson/tuxvantage/pkg/acpi"
	"github.com/alinuxperson/tuxvantage/pkg/config"
	"github.com/alinuxperson/tuxvantage/pkg/consistency"
	"github.com/alinuxperson/tuxvantage/pkg/machine"
	"github.com/alinuxperson/tuxvantage/pkg/paths"
	"github.com/alinuxperson/tuxvantage/pkg/power"
	"github.com/alinuxperson/tuxvantage/pkg/tip"
	"github.com/alinuxperson/tuxvantage/pkg/version"
)

var (
	gFeatures      = "Features:"
	gConfiguration = "Configuration:"
	commandGroups  = []string{
		gFeatures,
		gConfiguration,
	}
)

// app is the assembled program state: paths, the config store, and the
// hardware controller for the active profile. It is built by the root
// command's persistent pre-run and threaded into every subcommand.
type app struct {
	paths      paths.Paths
	store      *config.Store
	controller *power.Controller

	// Snapshots of the resolved presentation settings, taken once after
	// the overrides are applied so the exit boundary needs no view.
	machine   bool
	panics    bool
	backtrace config.Backtrace

	flags struct {
		logLevel              string
		configDir             string
		profile               string
		machine               string
		handler               string
		backtrace             string
		panic                 bool
		skipConsistencyChecks bool
	}
}

func main() {
	a := &app{}
	if err := a.newRootCommand().Execute(); err != nil {
		a.exitWithError(err)
	}
}

// exitWithError is the user-facing failure boundary: panic raw when the
// panic toggle is on, emit the machine envelope in machine mode, and
// otherwise print the primary cause, the distinct cause chain, then the
// tip.
func (a *app) exitWithError(err error) {
	if a.panics {
		panic(err)
	}

	if a.machine {
		machine.Emit(machine.Failure(err))
		os.Exit(1)
	}

	chain := tip.Chain(err)
	if len(chain) > 0 {
		message := bold(chain[0]) + "\n"
		for _, cause := range chain[1:] {
			message += "    caused by " + italic(cause) + "\n"
		}
		logrus.Error(message)
	}

	if t := tip.Of(err); t != "" {
		logrus.Infof("tip: %s", t)
	}

	if a.backtrace.Errors {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}

	os.Exit(1)
}

func (a *app) setupLogger() error {
	level, err := logrus.ParseLevel(a.flags.logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tuxvantage",
		Short: "tuxvantage brings Lenovo Vantage power management features to Linux",
		Long: `tuxvantage brings some Windows-exclusive functionality of the Lenovo
Vantage software to Linux systems: battery conservation mode, rapid
charging, and the system performance mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setupLogger(); err != nil {
				return err
			}

			if err := a.initializePaths(); err != nil {
				return err
			}

			store, warnings, err := config.Load(a.paths)
			if err != nil {
				return err
			}
			a.store = store

			if err := a.applyOverrides(cmd); err != nil {
				return err
			}

			if !a.machine && len(warnings) > 0 {
				logrus.Warn("recoverable errors occurred during config initialization, see below")
				for _, warning := range warnings {
					logrus.Warnf("%v", warning)
				}
			}

			if !a.flags.skipConsistencyChecks {
				if err := a.checkConsistency(); err != nil {
					return err
				}
			}

			// The profiles commands manage profile files; they must not
			// require a profile that works on this machine.
			if !isProfilesCommand(cmd) {
				if err := a.initializeController(); err != nil {
					return err
				}
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&a.flags.logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&a.flags.configDir, "config-dir", "", "config directory (defaults to the user config dir)")
	globalFlags.StringVarP(&a.flags.profile, "profile", "p", "", "name of the profile to use; overrides the config file")
	globalFlags.StringVar(&a.flags.machine, "machine", "", "machine readable output: always, never or auto; overrides the config file")
	globalFlags.StringVar(&a.flags.handler, "handler", "", "default conflict handler: switch, ignore or error; overrides the config file")
	globalFlags.StringVarP(&a.flags.backtrace, "backtrace", "b", "", "backtrace configuration as \"panics,errors\" (0 or 1 each); overrides the config file")
	globalFlags.BoolVarP(&a.flags.panic, "panic", "P", false, "panic on error; for debugging only")
	globalFlags.BoolVar(&a.flags.skipConsistencyChecks, "skip-consistency-checks", false, "skip consistency checks; for debugging only")

	for _, group := range commandGroups {
		cmd.AddGroup(&cobra.Group{ID: group, Title: group})
	}

	cmd.AddCommand(
		newVersionCommand(),
		a.newConservationCommand(),
		a.newRapidChargeCommand(),
		a.newSystemPerformanceCommand(),
		a.newProfilesCommand(),
	)

	return cmd
}

func (a *app) initializePaths() error {
	var err error
	if a.flags.configDir != "" {
		a.paths, err = paths.At(a.flags.configDir)
	} else {
		a.paths, err = paths.Resolve()
	}
	return err
}

// applyOverrides copies the invocation arguments into the override
// layer and snapshots the resolved machine/panic/backtrace values.
func (a *app) applyOverrides(cmd *cobra.Command) error {
	view := a.store.Write()

	tux := view.TuxVantage()
	flags := cmd.Root().PersistentFlags()

	if flags.Changed("profile") {
		tux.Overrides.Profile = &a.flags.profile
	}
	if flags.Changed("machine") {
		m, err := config.ParseMachine(a.flags.machine)
		if err != nil {
			view.Close()
			return err
		}
		tux.Overrides.Machine = &m
	}
	if flags.Changed("handler") {
		h, err := config.ParseHandler(a.flags.handler)
		if err != nil {
			view.Close()
			return err
		}
		tux.Overrides.Handlers.Default = &h
	}
	if flags.Changed("backtrace") {
		b, err := config.ParseBacktrace(a.flags.backtrace)
		if err != nil {
			view.Close()
			return err
		}
		tux.Overrides.Backtrace = b
	}
	tux.Overrides.Panic = a.flags.panic

	read := view.Downgrade()
	defer read.Close()

	a.machine = read.TuxVantage().ResolveMachine().Get()
	a.panics = read.TuxVantage().ResolvePanic()
	a.backtrace = read.TuxVantage().ResolveBacktrace()

	return nil
}

func (a *app) checkConsistency() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get current executable location: %v", err)
	}

	return consistency.Check(a.paths.ConsistencyFile(), exe)
}

func (a *app) initializeController() error {
	view := a.store.Read()
	defer view.Close()

	name := view.TuxVantage().ResolveProfile()

	entry, err := view.Profiles().Resolve(name)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			err = tip.With(err, "this program tries to identify the product of your machine, which requires root privileges; try running it as root")
		}
		return err
	}

	logrus.Debugf("active profile is '%s'", entry.Get().Name)
	a.controller = power.New(acpi.NewProcCaller(), entry.Get())

	return nil
}

func isProfilesCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "profiles" {
			return true
		}
	}
	return false
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// Version does not need config or hardware.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tuxvantage version %s commit %s\n", version.Version, version.GitCommit)
		},
	}
}
