package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alinuxperson/tuxvantage/pkg/profile"
	"github.com/alinuxperson/tuxvantage/pkg/tip"
)

func (a *app) newProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile", "pr"},
		Short:   "Manage hardware profiles",
		Long: `Profiles bundle the ACPI commands for a machine model. Built-in
profiles ship with the binary; external profiles are JSON files in the
profiles directory. Built-ins always win a name lookup, so an external
profile cannot shadow one.`,
		GroupID: gConfiguration,
	}

	cmd.AddCommand(
		a.newProfilesGetCommand(),
		a.newProfilesGetDefaultCommand(),
		a.newProfilesSetCommand(),
		a.newProfilesSetDefaultCommand(),
		a.newProfilesRemoveCommand(),
		a.newProfilesJSONCommand(),
	)

	return cmd
}

// profilePayload is the machine-readable shape of one profile entry.
type profilePayload struct {
	Name    string           `json:"name"`
	BuiltIn bool             `json:"builtIn"`
	Path    string           `json:"path,omitempty"`
	Profile *profile.Profile `json:"profile"`
}

func payloadOf(entry profile.Entry) profilePayload {
	path, _ := entry.Path()
	return profilePayload{
		Name:    entry.Get().Name,
		BuiltIn: entry.BuiltIn(),
		Path:    path,
		Profile: entry.Get(),
	}
}

func printEntry(entry profile.Entry) {
	p := entry.Get()

	provenance := "built-in"
	if path, ok := entry.Path(); ok {
		provenance = path
	}

	logrus.Infof("%s (%s)", bold(p.Name), provenance)
	logrus.Infof("  expected product names: %v", p.ExpectedProductNames)
	logrus.Infof("  battery set command: %s", p.Battery.SetCommand)
	logrus.Infof("  conservation get command: %s", p.Battery.Conservation.GetCommand)
	logrus.Infof("  rapid charge get command: %s", p.Battery.RapidCharge.GetCommand)
	logrus.Infof("  system performance set command: %s", p.SystemPerformance.Commands.Set)
}

func (a *app) newProfilesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get [name]",
		Aliases: []string{"g"},
		Short:   "Show one profile, or every known profile",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			view := a.store.Read()
			defer view.Close()

			if len(args) == 1 {
				entry, ok := view.Profiles().Find(args[0])
				if !ok {
					return pkgerrors.Errorf("the profile '%s' does not exist", args[0])
				}

				if a.machine {
					emitSuccess(payloadOf(entry))
					return nil
				}
				printEntry(entry)

				return nil
			}

			entries := view.Profiles().WithBuiltIns()
			if a.machine {
				payloads := make([]profilePayload, 0, len(entries))
				for _, entry := range entries {
					payloads = append(payloads, payloadOf(entry))
				}
				emitSuccess(payloads)
				return nil
			}

			for _, entry := range entries {
				printEntry(entry)
			}

			return nil
		},
	}
}

func (a *app) newProfilesGetDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get-default",
		Aliases: []string{"gd"},
		Short:   "Show the default profile",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			view := a.store.Read()
			defer view.Close()

			name := view.TuxVantage().ResolveProfile()
			if name == "" {
				return tip.With(
					pkgerrors.New("there is no default profile declared in tuxvantage.json"),
					"declare one with `tuxvantage profiles set-default <name>`",
				)
			}

			entry, ok := view.Profiles().Find(name)
			if !ok {
				return pkgerrors.Errorf("the default profile '%s' does not exist", name)
			}

			if a.machine {
				emitSuccess(payloadOf(entry))
				return nil
			}
			printEntry(entry)

			return nil
		},
	}
}

func (a *app) newProfilesSetCommand() *cobra.Command {
	var createNew bool

	cmd := &cobra.Command{
		Use:     "set <name> [file]",
		Aliases: []string{"s"},
		Short:   "Replace the contents of an external profile",
		Long: `Replace the contents of the external profile called name with the
JSON document read from file, or from standard input when file is
omitted. Built-in profiles cannot be changed. Pass --create-new to
create the profile when it does not exist yet.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]

			contents, err := readProfileContents(args)
			if err != nil {
				return err
			}

			// Reject malformed documents before touching the file; a
			// broken profile on disk would warn on every later startup.
			var p profile.Profile
			if err := json.Unmarshal(contents, &p); err != nil {
				return pkgerrors.Wrap(err, "failed to deserialize the new profile contents")
			}

			view := a.store.Read()
			entry, ok := view.Profiles().Find(name)
			view.Close()

			var path string
			switch {
			case ok && entry.BuiltIn():
				return pkgerrors.Errorf("the profile '%s' is built-in and cannot be changed", name)
			case ok:
				path, _ = entry.Path()
			case createNew:
				path = filepath.Join(a.paths.ProfilesDir(), name+".json")
			default:
				return tip.With(
					pkgerrors.Errorf("the profile '%s' does not exist", name),
					"pass --create-new to create it",
				)
			}

			if err := os.WriteFile(path, contents, 0644); err != nil {
				return pkgerrors.Wrapf(err, "failed to write profile %s", path)
			}

			if a.machine {
				emitSuccess(nil)
				return nil
			}
			logrus.Infof("wrote profile '%s' to %s", name, bold(path))

			return nil
		},
	}

	cmd.Flags().BoolVar(&createNew, "create-new", false, "create the profile if it does not exist")

	return cmd
}

func readProfileContents(args []string) ([]byte, error) {
	if len(args) == 2 {
		contents, err := os.ReadFile(args[1])
		return contents, pkgerrors.Wrapf(err, "failed to read profile contents from %s", args[1])
	}

	contents, err := io.ReadAll(os.Stdin)
	return contents, pkgerrors.Wrap(err, "failed to read profile contents from standard input")
}

func (a *app) newProfilesSetDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set-default <name>",
		Aliases: []string{"sd"},
		Short:   "Declare the default profile in tuxvantage.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]

			view := a.store.Write()
			defer view.Close()

			if _, ok := view.Profiles().Find(name); !ok {
				return pkgerrors.Errorf("the profile '%s' does not exist", name)
			}

			view.TuxVantage().Profile = &name
			if err := view.Dump(); err != nil {
				return err
			}

			if a.machine {
				emitSuccess(nil)
				return nil
			}
			logrus.Infof("declared '%s' as the default profile", name)

			return nil
		},
	}
}

func (a *app) newProfilesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an external profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]

			view := a.store.Read()
			entry, ok := view.Profiles().Find(name)
			view.Close()

			if !ok {
				return pkgerrors.Errorf("the profile '%s' does not exist", name)
			}

			path, external := entry.Path()
			if !external {
				return tip.With(
					pkgerrors.Errorf("the profile '%s' is built-in", name),
					"only external profiles can be removed",
				)
			}

			if err := os.Remove(path); err != nil {
				return pkgerrors.Wrapf(err, "failed to remove profile %s", path)
			}

			if a.machine {
				emitSuccess(nil)
				return nil
			}
			logrus.Infof("removed profile '%s' (%s)", name, bold(path))

			return nil
		},
	}
}

func (a *app) newProfilesJSONCommand() *cobra.Command {
	var (
		generateOnError bool
		pretty          bool
	)

	cmd := &cobra.Command{
		Use:   "json <name>",
		Short: "Print the JSON document of a profile",
		Long: `Print the JSON document of a profile on standard output. External
profiles are printed verbatim from their file; built-in profiles are
serialized from memory. Pass --generate-on-error to fall back to
serialization when the profile file cannot be read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			view := a.store.Read()
			entry, ok := view.Profiles().Find(args[0])
			view.Close()

			if !ok {
				return pkgerrors.Errorf("the profile '%s' does not exist", args[0])
			}

			if path, external := entry.Path(); external {
				contents, err := os.ReadFile(path)
				if err == nil {
					fmt.Print(string(contents))
					return nil
				}
				if !generateOnError {
					return tip.With(
						pkgerrors.Wrapf(err, "failed to read profile %s", path),
						"pass --generate-on-error to serialize the in-memory profile instead",
					)
				}
				logrus.Warnf("failed to read profile %s, serializing from memory: %v", path, err)
			}

			return printGenerated(entry.Get(), pretty)
		},
	}

	cmd.Flags().BoolVar(&generateOnError, "generate-on-error", false, "serialize the in-memory profile when its file cannot be read")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the generated JSON")

	return cmd
}

func printGenerated(p *profile.Profile, pretty bool) error {
	var (
		contents []byte
		err      error
	)
	if pretty {
		contents, err = json.MarshalIndent(p, "", "  ")
	} else {
		contents, err = json.Marshal(p)
	}
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize the profile")
	}

	fmt.Println(string(contents))

	return nil
}
