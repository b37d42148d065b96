package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Backtrace is the verbosity pair for failure reporting: whether to
// dump stacks on aborts and whether to report the full error chain with
// wrap sites.
type Backtrace struct {
	Panics bool
	Errors bool
}

// ParseBacktrace parses the "panics,errors" 0/1 pair.
func ParseBacktrace(s string) (Backtrace, error) {
	panics, errs, found := strings.Cut(s, ",")
	if !found {
		return Backtrace{}, pkgerrors.New("expected ',' delimiter")
	}

	p, err := strconv.Atoi(panics)
	if err != nil {
		return Backtrace{}, pkgerrors.Wrap(err, "expected 'panics' to be a number")
	}
	e, err := strconv.Atoi(errs)
	if err != nil {
		return Backtrace{}, pkgerrors.Wrap(err, "expected 'errors' to be a number")
	}

	return Backtrace{Panics: p != 0, Errors: e != 0}, nil
}

func (b Backtrace) String() string {
	return fmt.Sprintf("%d,%d", boolToInt(b.Panics), boolToInt(b.Errors))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (b Backtrace) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Backtrace) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseBacktrace(s)
	if err != nil {
		return err
	}
	*b = parsed

	return nil
}
