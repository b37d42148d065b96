package main

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alinuxperson/tuxvantage/pkg/acpi"
	"github.com/alinuxperson/tuxvantage/pkg/tip"
)

func TestWithACPITipKernelModule(t *testing.T) {
	// The regulation loop wraps toggle failures before they reach the
	// boundary; the tip must still be found through the wrapping.
	err := pkgerrors.Wrap(acpi.ErrKernelModuleNotLoaded, "cannot open /proc/acpi/call")
	err = pkgerrors.Wrap(err, "failed to enable battery conservation")

	got := withACPITip(err)
	require.Error(t, got)
	assert.Contains(t, tip.Of(got), "modprobe acpi_call")
	assert.ErrorIs(t, got, acpi.ErrKernelModuleNotLoaded)
}

func TestWithACPITipMethodNotFound(t *testing.T) {
	err := pkgerrors.Wrap(acpi.ErrMethodNotFound, "acpi call failed")

	got := withACPITip(err)
	require.Error(t, got)
	assert.Contains(t, tip.Of(got), "profiles")
}

func TestWithACPITipLeavesOtherErrorsAlone(t *testing.T) {
	err := pkgerrors.New("battery refresh failed")

	got := withACPITip(err)
	assert.Equal(t, err, got)
	assert.Equal(t, "", tip.Of(got))
}

func TestWithACPITipNil(t *testing.T) {
	assert.NoError(t, withACPITip(nil))
}
