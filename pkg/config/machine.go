package config

import (
	"encoding/json"
	"os"

	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Machine is the machine-readable-output mode.
type Machine int

const (
	// MachineAuto emits machine output when stdout is not a terminal.
	MachineAuto Machine = iota
	// MachineAlways emits machine output unconditionally.
	MachineAlways
	// MachineNever always emits human output.
	MachineNever
)

// ParseMachine parses a machine-output mode.
func ParseMachine(s string) (Machine, error) {
	switch s {
	case "always", "true", "t":
		return MachineAlways, nil
	case "never", "false", "f":
		return MachineNever, nil
	case "auto", "a":
		return MachineAuto, nil
	default:
		return 0, pkgerrors.Errorf("invalid machine choice '%s'", s)
	}
}

func (m Machine) String() string {
	switch m {
	case MachineAlways:
		return "always"
	case MachineNever:
		return "never"
	case MachineAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Get resolves the tri-state to a concrete answer, consulting the
// terminal for MachineAuto.
func (m Machine) Get() bool {
	switch m {
	case MachineAlways:
		return true
	case MachineNever:
		return false
	default:
		notATTY := !isatty.IsTerminal(os.Stdout.Fd())
		if notATTY {
			logrus.Debug("stdout isn't a tty, machine output on")
		} else {
			logrus.Debug("stdout is a tty, machine output off")
		}
		return notATTY
	}
}

func (m Machine) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Machine) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseMachine(s)
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}
