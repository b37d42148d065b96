// Package acpi is the boundary to the low-level hardware command
// layer. Commands are ACPI method invocations issued through the
// acpi_call kernel module; callers pattern-match the sentinel errors to
// attach remediation hints but never interpret bit patterns here.
package acpi

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMethodNotFound means the firmware does not expose the invoked
	// ACPI method; the active profile likely does not fit this machine.
	ErrMethodNotFound = errors.New("acpi method not found")

	// ErrKernelModuleNotLoaded means /proc/acpi/call is absent because
	// the acpi_call kernel module is not loaded.
	ErrKernelModuleNotLoaded = errors.New("acpi_call kernel module not loaded")
)

// Caller issues ACPI method calls. Implementations are synchronous and
// non-cancellable.
type Caller interface {
	// Call invokes method with the given arguments and returns the
	// value the firmware reported.
	Call(method string, args ...uint64) (uint64, error)
}

const procAcpiCall = "/proc/acpi/call"

// ProcCaller talks to the acpi_call kernel module through
// /proc/acpi/call.
type ProcCaller struct {
	path string
}

// NewProcCaller returns a caller bound to /proc/acpi/call.
func NewProcCaller() *ProcCaller {
	return &ProcCaller{path: procAcpiCall}
}

func (c *ProcCaller) Call(method string, args ...uint64) (uint64, error) {
	command := method
	for _, arg := range args {
		command += fmt.Sprintf(" %#x", arg)
	}
	logrus.Tracef("acpi call: %s", command)

	if err := os.WriteFile(c.path, []byte(command), 0); err != nil {
		if os.IsNotExist(err) {
			return 0, pkgerrors.Wrapf(ErrKernelModuleNotLoaded, "cannot open %s", c.path)
		}
		return 0, pkgerrors.Wrapf(err, "failed to issue acpi call '%s'", command)
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read result of acpi call '%s'", command)
	}

	result := strings.TrimRight(string(raw), "\x00\n")
	logrus.Tracef("acpi result: %s", result)

	return parseResult(command, result)
}

func parseResult(command, result string) (uint64, error) {
	if strings.HasPrefix(result, "Error:") {
		if strings.Contains(result, "AE_NOT_FOUND") {
			return 0, pkgerrors.Wrapf(ErrMethodNotFound, "acpi call '%s' failed", command)
		}
		return 0, pkgerrors.Errorf("acpi call '%s' failed: %s", command, result)
	}

	// Results look like "0x0" or "0x1 [...]"; only the leading value
	// matters.
	value, _, _ := strings.Cut(result, " ")
	parsed, err := strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "unexpected result '%s' from acpi call '%s'", result, command)
	}

	return parsed, nil
}
