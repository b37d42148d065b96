// Package machine renders the machine-readable output envelope emitted
// when human console output is suppressed.
package machine

import (
	"encoding/json"
	"fmt"

	"github.com/alinuxperson/tuxvantage/pkg/tip"
)

// Output is the JSON envelope: a success payload, or a failure with the
// deduplicated cause chain and an optional remediation tip.
type Output struct {
	Status   string      `json:"status"`
	Contents interface{} `json:"contents,omitempty"`
	Chain    []string    `json:"chain,omitempty"`
	Tip      string      `json:"tip,omitempty"`
}

// Success wraps a payload. A nil payload still reports success.
func Success(contents interface{}) Output {
	return Output{Status: "success", Contents: contents}
}

// Failure wraps an error with its distinct causes, oldest last.
func Failure(err error) Output {
	return Output{
		Status: "failure",
		Chain:  tip.Chain(err),
		Tip:    tip.Of(err),
	}
}

// Emit prints the envelope as one JSON line on stdout.
func Emit(o Output) {
	b, err := json.Marshal(o)
	if err != nil {
		panic("failed to serialize machine output: " + err.Error())
	}
	fmt.Println(string(b))
}
