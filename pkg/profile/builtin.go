package profile

import "github.com/alinuxperson/tuxvantage/pkg/utils/ptr"

// Built-in profiles, compiled into the binary. Order matters: it is the
// search order for explicit lookup and auto-detection.
var builtIns = []Profile{
	Ideapad15IIL05,
	IdeapadAMD,
}

// BuiltIns returns the built-in profiles in declared order.
func BuiltIns() []Profile {
	out := make([]Profile, len(builtIns))
	copy(out, builtIns)
	return out
}

// Ideapad15IIL05 targets the Intel IdeaPad 15IIL05 family.
var Ideapad15IIL05 = Profile{
	Name:                 "IDEAPAD_15IIL05",
	ExpectedProductNames: []string{"81YK"},
	SystemPerformance: SystemPerformance{
		Commands: SystemPerformanceCommands{
			Set:        `\_SB.PCI0.LPC0.EC0.VPC0.DYTC`,
			GetFCMOBit: `\_SB.PCI0.LPC0.EC0.FCMO`,
			GetSPMOBit: `\_SB.PCI0.LPC0.EC0.SPMO`,
		},
		Bits: SystemPerformanceBits{
			IntelligentCooling: Bit{Same: ptr.To[uint64](0x0)},
			ExtremePerformance: Bit{Same: ptr.To[uint64](0x1)},
			BatterySaving:      Bit{Same: ptr.To[uint64](0x2)},
		},
		Parameters: SystemPerformanceParameters{
			IntelligentCooling: 0x000FB001,
			ExtremePerformance: 0x0012B001,
			BatterySaving:      0x0013B001,
		},
	},
	Battery: Battery{
		SetCommand: `\_SB.PCI0.LPC0.EC0.VPC0.SBMC`,
		Conservation: FeatureCommands{
			GetCommand: `\_SB.PCI0.LPC0.EC0.BTSM`,
			Parameters: EnableDisable{Enable: 0x03, Disable: 0x05},
		},
		RapidCharge: FeatureCommands{
			GetCommand: `\_SB.PCI0.LPC0.EC0.QCHO`,
			Parameters: EnableDisable{Enable: 0x07, Disable: 0x08},
		},
	},
}

// IdeapadAMD targets AMD IdeaPad models, whose embedded controller
// lives behind a different ACPI path.
var IdeapadAMD = Profile{
	Name:                 "IDEAPAD_AMD",
	ExpectedProductNames: []string{"81YQ", "81YM"},
	SystemPerformance: SystemPerformance{
		Commands: SystemPerformanceCommands{
			Set:        `\_SB.PCI0.SBRG.EC0.VPC0.DYTC`,
			GetFCMOBit: `\_SB.PCI0.SBRG.EC0.FCMO`,
			GetSPMOBit: `\_SB.PCI0.SBRG.EC0.SPMO`,
		},
		Bits: SystemPerformanceBits{
			IntelligentCooling: Bit{Same: ptr.To[uint64](0x0)},
			ExtremePerformance: Bit{Same: ptr.To[uint64](0x1)},
			BatterySaving:      Bit{Same: ptr.To[uint64](0x2)},
		},
		Parameters: SystemPerformanceParameters{
			IntelligentCooling: 0x000FB001,
			ExtremePerformance: 0x0012B001,
			BatterySaving:      0x0013B001,
		},
	},
	Battery: Battery{
		SetCommand: `\_SB.PCI0.SBRG.EC0.VPC0.SBMC`,
		Conservation: FeatureCommands{
			GetCommand: `\_SB.PCI0.SBRG.EC0.BTSM`,
			Parameters: EnableDisable{Enable: 0x03, Disable: 0x05},
		},
		RapidCharge: FeatureCommands{
			GetCommand: `\_SB.PCI0.SBRG.EC0.QCHO`,
			Parameters: EnableDisable{Enable: 0x07, Disable: 0x08},
		},
	},
}
