package main

import (
	"github.com/fatih/color"

	"github.com/alinuxperson/tuxvantage/pkg/machine"
)

var (
	bold   = color.New(color.Bold).Sprint
	italic = color.New(color.Italic).Sprint
	green  = color.New(color.Bold, color.FgGreen).Sprint
	red    = color.New(color.Bold, color.FgRed).Sprint
)

func onOff(enabled bool) string {
	if enabled {
		return green("enabled")
	}
	return red("disabled")
}

func emitSuccess(contents interface{}) {
	machine.Emit(machine.Success(contents))
}
