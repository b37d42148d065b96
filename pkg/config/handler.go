package config

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
)

// Handler decides what to do when enabling a battery feature while the
// mutually exclusive one is already enabled.
type Handler int

const (
	// HandlerSwitch disables the conflicting feature, then enables the
	// requested one.
	HandlerSwitch Handler = iota
	// HandlerIgnore enables the requested feature even though the
	// conflict remains.
	HandlerIgnore
	// HandlerError refuses the operation.
	HandlerError
)

// ParseHandler parses a handler name. Single-letter aliases are
// accepted.
func ParseHandler(s string) (Handler, error) {
	switch s {
	case "switch", "s":
		return HandlerSwitch, nil
	case "ignore", "i":
		return HandlerIgnore, nil
	case "error", "e":
		return HandlerError, nil
	default:
		return 0, pkgerrors.Errorf("invalid handler '%s'", s)
	}
}

func (h Handler) String() string {
	switch h {
	case HandlerSwitch:
		return "switch"
	case HandlerIgnore:
		return "ignore"
	case HandlerError:
		return "error"
	default:
		return "unknown"
	}
}

func (h Handler) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Handler) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseHandler(s)
	if err != nil {
		return err
	}
	*h = parsed

	return nil
}

// Handlers is the per-feature handler choice. Nil fields fall back to
// Default, which itself falls back to HandlerSwitch.
type Handlers struct {
	Default             *Handler `json:"default,omitempty"`
	BatteryConservation *Handler `json:"batteryConservation,omitempty"`
	RapidCharge         *Handler `json:"rapidCharge,omitempty"`
}

// ResolveDefault returns the global default handler.
func (h Handlers) ResolveDefault() Handler {
	if h.Default != nil {
		return *h.Default
	}
	return HandlerSwitch
}

// ResolveBatteryConservation returns the handler used when enabling
// battery conservation.
func (h Handlers) ResolveBatteryConservation() Handler {
	if h.BatteryConservation != nil {
		return *h.BatteryConservation
	}
	return h.ResolveDefault()
}

// ResolveRapidCharge returns the handler used when enabling rapid
// charge.
func (h Handlers) ResolveRapidCharge() Handler {
	if h.RapidCharge != nil {
		return *h.RapidCharge
	}
	return h.ResolveDefault()
}
