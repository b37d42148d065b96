// Package tip attaches an optional, single remediation hint to an
// error at the boundary closest to the user. Lower layers wrap causes
// with pkg/errors; only the caller that knows what the user attempted
// should pick a tip.
package tip

import (
	"errors"
	"strings"
)

// Error is an error with an optional remediation tip.
type Error struct {
	err error
	tip string
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Tip returns the remediation hint, or "" if none was attached.
func (e *Error) Tip() string {
	return e.tip
}

// With attaches tip to err. A nil err passes through.
func With(err error, tip string) error {
	if err == nil {
		return nil
	}
	return &Error{err: err, tip: tip}
}

// Maybe attaches tip only when it is non-empty.
func Maybe(err error, tip string) error {
	if err == nil || tip == "" {
		return err
	}
	return With(err, tip)
}

// Of returns the innermost tip attached anywhere in err's chain.
func Of(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.tip
	}
	return ""
}

// Chain returns the individual messages of err's cause chain, outermost
// first, with duplicates removed. Each entry is that error's own text,
// not the concatenated form pkg/errors produces.
func Chain(err error) []string {
	var (
		chain []string
		seen  = make(map[string]bool)
	)

	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			// Stack and tip layers repeat their cause's text verbatim;
			// they contribute nothing to the chain.
			if msg == next.Error() {
				err = next
				continue
			}
			// pkg/errors wrapping renders as "context: cause"; strip
			// the cause's text to recover the context on its own.
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}

		if msg != "" && !seen[msg] {
			seen[msg] = true
			chain = append(chain, msg)
		}

		err = next
	}

	return chain
}
