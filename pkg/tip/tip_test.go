package tip

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAndOf(t *testing.T) {
	err := With(pkgerrors.New("boom"), "try turning it off and on again")

	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "try turning it off and on again", Of(err))
}

func TestWithNilPassesThrough(t *testing.T) {
	assert.NoError(t, With(nil, "unused"))
}

func TestMaybe(t *testing.T) {
	err := pkgerrors.New("boom")

	assert.Equal(t, err, Maybe(err, ""))
	assert.Equal(t, "hint", Of(Maybe(err, "hint")))
}

func TestOfSurvivesWrapping(t *testing.T) {
	err := With(pkgerrors.New("boom"), "hint")
	wrapped := pkgerrors.Wrap(err, "failed to do the thing")

	assert.Equal(t, "hint", Of(wrapped))
}

func TestOfWithoutTip(t *testing.T) {
	assert.Equal(t, "", Of(pkgerrors.New("boom")))
}

func TestChainRecoversIndividualMessages(t *testing.T) {
	err := pkgerrors.New("open /proc/acpi/call: no such file")
	err = pkgerrors.Wrap(err, "failed to issue acpi call")
	err = pkgerrors.Wrap(err, "failed to enable battery conservation")

	assert.Equal(t, []string{
		"failed to enable battery conservation",
		"failed to issue acpi call",
		"open /proc/acpi/call: no such file",
	}, Chain(err))
}

func TestChainSkipsTipLayers(t *testing.T) {
	// The tip wrapper repeats its cause's message; the chain must not
	// show it twice.
	err := With(pkgerrors.New("boom"), "hint")
	err = pkgerrors.Wrap(err, "failed outer")

	assert.Equal(t, []string{"failed outer", "boom"}, Chain(err))
}

func TestChainDeduplicatesRepeatedMessages(t *testing.T) {
	err := pkgerrors.Wrap(pkgerrors.New("boom"), "boom")

	assert.Equal(t, []string{"boom"}, Chain(err))
}

func TestChainNil(t *testing.T) {
	require.Empty(t, Chain(nil))
}
