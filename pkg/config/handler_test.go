package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHandler(t *testing.T) {
	cases := []struct {
		input   string
		want    Handler
		wantErr bool
	}{
		{input: "switch", want: HandlerSwitch},
		{input: "s", want: HandlerSwitch},
		{input: "ignore", want: HandlerIgnore},
		{input: "i", want: HandlerIgnore},
		{input: "error", want: HandlerError},
		{input: "e", want: HandlerError},
		{input: "panic", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			got, err := ParseHandler(c.input)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestHandlerJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(HandlerIgnore)
	require.NoError(t, err)
	assert.Equal(t, `"ignore"`, string(b))

	var h Handler
	require.NoError(t, json.Unmarshal(b, &h))
	assert.Equal(t, HandlerIgnore, h)
}

func TestParseMachine(t *testing.T) {
	cases := []struct {
		input   string
		want    Machine
		wantErr bool
	}{
		{input: "always", want: MachineAlways},
		{input: "true", want: MachineAlways},
		{input: "t", want: MachineAlways},
		{input: "never", want: MachineNever},
		{input: "false", want: MachineNever},
		{input: "f", want: MachineNever},
		{input: "auto", want: MachineAuto},
		{input: "a", want: MachineAuto},
		{input: "sometimes", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			got, err := ParseMachine(c.input)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestMachineGet(t *testing.T) {
	assert.True(t, MachineAlways.Get())
	assert.False(t, MachineNever.Get())
}

func TestParseBacktrace(t *testing.T) {
	cases := []struct {
		input   string
		want    Backtrace
		wantErr bool
	}{
		{input: "0,0", want: Backtrace{}},
		{input: "1,0", want: Backtrace{Panics: true}},
		{input: "0,1", want: Backtrace{Errors: true}},
		{input: "1,1", want: Backtrace{Panics: true, Errors: true}},
		{input: "1", wantErr: true},
		{input: "yes,no", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			got, err := ParseBacktrace(c.input)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBacktraceString(t *testing.T) {
	assert.Equal(t, "1,0", Backtrace{Panics: true}.String())
	assert.Equal(t, "0,1", Backtrace{Errors: true}.String())
}
