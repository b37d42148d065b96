package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// DefaultBatteryLevel is the regulation threshold used when neither the
// invocation nor the config file supplies one.
const DefaultBatteryLevel = BatteryLevel(80)

// DefaultCoolDown is the poll interval used when none is supplied.
const DefaultCoolDown = CoolDown(60 * time.Second)

// BatteryLevel is a charge percentage within [0, 100].
type BatteryLevel int

// NewBatteryLevel fails if level lies outside [0, 100].
func NewBatteryLevel(level int) (BatteryLevel, error) {
	if level < 0 || level > 100 {
		return 0, pkgerrors.Errorf("%d%% is out of bounds (must be within 0 and 100 inclusive)", level)
	}
	return BatteryLevel(level), nil
}

// ParseBatteryLevel parses a percentage, tolerating a trailing '%'.
func ParseBatteryLevel(s string) (BatteryLevel, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "number given wasn't valid")
	}
	return NewBatteryLevel(n)
}

func (l BatteryLevel) String() string {
	return fmt.Sprintf("%d%%", int(l))
}

func (l BatteryLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *BatteryLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseBatteryLevel(s)
	if err != nil {
		return err
	}
	*l = parsed

	return nil
}

// CoolDown is the non-negative wait between regulation cycles.
type CoolDown time.Duration

// ParseCoolDown parses whole or fractional seconds; a trailing "s" is
// tolerated and stripped.
func ParseCoolDown(s string) (CoolDown, error) {
	s = strings.TrimSuffix(s, "s")

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "value wasn't a valid double or number")
	}
	if secs < 0 {
		return 0, pkgerrors.Errorf("cooldown must not be negative, got %s", s)
	}

	return CoolDown(time.Duration(secs * float64(time.Second))), nil
}

// Duration returns the cooldown as a time.Duration.
func (c CoolDown) Duration() time.Duration {
	return time.Duration(c)
}

func (c CoolDown) String() string {
	secs := time.Duration(c).Seconds()
	if secs == float64(int64(secs)) {
		return strconv.FormatInt(int64(secs), 10)
	}
	return strconv.FormatFloat(secs, 'f', -1, 64)
}

func (c CoolDown) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CoolDown) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseCoolDown(s)
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// MatchKind selects how the regulated battery is looked up.
type MatchKind string

const (
	MatchFirst        MatchKind = "first"
	MatchIndex        MatchKind = "index"
	MatchVendor       MatchKind = "vendor"
	MatchModel        MatchKind = "model"
	MatchSerialNumber MatchKind = "serial_number"
)

// BatteryMatches is the battery-selection predicate.
type BatteryMatches struct {
	Kind  MatchKind
	Index int
	Value string
}

// ParseBatteryMatches parses a "kind=value" predicate. "first" needs no
// value; short aliases f, i, v, m, sn and s are accepted.
func ParseBatteryMatches(s string) (BatteryMatches, error) {
	kind, value, found := strings.Cut(s, "=")
	if !found && kind != "first" && kind != "f" {
		return BatteryMatches{}, pkgerrors.New("delimit the variant and value with '='")
	}

	switch kind {
	case "first", "f":
		if found {
			return BatteryMatches{}, pkgerrors.Errorf("the 'first' variant takes no value, got '%s'", value)
		}
		return BatteryMatches{Kind: MatchFirst}, nil
	case "index", "i":
		index, err := strconv.Atoi(value)
		if err != nil {
			return BatteryMatches{}, pkgerrors.Wrap(err, "value wasn't a valid integer")
		}
		return BatteryMatches{Kind: MatchIndex, Index: index}, nil
	case "vendor", "v":
		return BatteryMatches{Kind: MatchVendor, Value: value}, nil
	case "model", "m":
		return BatteryMatches{Kind: MatchModel, Value: value}, nil
	case "serial_number", "sn", "s":
		return BatteryMatches{Kind: MatchSerialNumber, Value: value}, nil
	default:
		return BatteryMatches{}, pkgerrors.Errorf("unknown variant '%s' with value '%s' passed", kind, value)
	}
}

func (m BatteryMatches) String() string {
	switch m.Kind {
	case MatchFirst, "":
		return "first"
	case MatchIndex:
		return fmt.Sprintf("index=%d", m.Index)
	default:
		return fmt.Sprintf("%s=%s", m.Kind, m.Value)
	}
}

// Matches reports whether a battery with the given position and
// identity satisfies the predicate.
func (m BatteryMatches) Matches(index int, vendor, model, serialNumber string) bool {
	switch m.Kind {
	case MatchFirst, "":
		return index == 0
	case MatchIndex:
		return m.Index == index
	case MatchVendor:
		return vendor != "" && vendor == m.Value
	case MatchModel:
		return model != "" && model == m.Value
	case MatchSerialNumber:
		return serialNumber != "" && serialNumber == m.Value
	default:
		return false
	}
}

func (m BatteryMatches) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *BatteryMatches) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseBatteryMatches(s)
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// BatteryOptions are the battery-targeting parameters of the regulation
// loop. Nil fields mean "not set at this layer".
type BatteryOptions struct {
	Matches    *BatteryMatches `json:"matches,omitempty"`
	Infallible bool            `json:"infallible,omitempty"`
	Threshold  *BatteryLevel   `json:"threshold,omitempty"`
	Cooldown   *CoolDown       `json:"cooldown,omitempty"`
}

// ResolveMatches returns the selection predicate, defaulting to first
// found.
func (b BatteryOptions) ResolveMatches() BatteryMatches {
	if b.Matches != nil {
		return *b.Matches
	}
	return BatteryMatches{Kind: MatchFirst}
}

// ResolveThreshold returns the threshold, defaulting to 80%.
func (b BatteryOptions) ResolveThreshold() BatteryLevel {
	if b.Threshold != nil {
		return *b.Threshold
	}
	return DefaultBatteryLevel
}

// ResolveCooldown returns the poll interval, defaulting to 60 seconds.
func (b BatteryOptions) ResolveCooldown() CoolDown {
	if b.Cooldown != nil {
		return *b.Cooldown
	}
	return DefaultCoolDown
}
