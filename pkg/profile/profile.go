// Package profile defines the hardware-command profiles: named bundles
// of ACPI command templates plus the product names they apply to.
package profile

// Profile is a named bundle of hardware command templates. Profiles are
// selected by name; built-in and external profiles may share a name and
// are disambiguated by search order.
type Profile struct {
	Name                 string            `json:"name"`
	ExpectedProductNames []string          `json:"expectedProductNames"`
	SystemPerformance    SystemPerformance `json:"systemPerformance"`
	Battery              Battery           `json:"battery"`
}

// SystemPerformance holds the command templates for system performance
// mode switching.
type SystemPerformance struct {
	Commands   SystemPerformanceCommands   `json:"commands"`
	Bits       SystemPerformanceBits       `json:"bits"`
	Parameters SystemPerformanceParameters `json:"parameters"`
}

type SystemPerformanceCommands struct {
	Set        string `json:"set"`
	GetFCMOBit string `json:"getFCMOBit"`
	GetSPMOBit string `json:"getSPMOBit"`
}

// Bit is the FCMO/SPMO register value pair identifying a performance
// mode. Some models report the same value in both registers, expressed
// with Same.
type Bit struct {
	Same *uint64 `json:"same,omitempty"`
	FCMO *uint64 `json:"fcmo,omitempty"`
	SPMO *uint64 `json:"spmo,omitempty"`
}

// ResolveFCMO returns the expected FCMO register value.
func (b Bit) ResolveFCMO() uint64 {
	if b.Same != nil {
		return *b.Same
	}
	if b.FCMO != nil {
		return *b.FCMO
	}
	return 0
}

// ResolveSPMO returns the expected SPMO register value.
func (b Bit) ResolveSPMO() uint64 {
	if b.Same != nil {
		return *b.Same
	}
	if b.SPMO != nil {
		return *b.SPMO
	}
	return 0
}

// IsSame reports whether the profile declares one value for both
// registers.
func (b Bit) IsSame() bool {
	return b.Same != nil
}

type SystemPerformanceBits struct {
	IntelligentCooling Bit `json:"intelligentCooling"`
	ExtremePerformance Bit `json:"extremePerformance"`
	BatterySaving      Bit `json:"batterySaving"`
}

type SystemPerformanceParameters struct {
	IntelligentCooling uint64 `json:"intelligentCooling"`
	ExtremePerformance uint64 `json:"extremePerformance"`
	BatterySaving      uint64 `json:"batterySaving"`
}

// Battery holds the command templates for the battery conservation and
// rapid charge toggles. Both features share one set command and differ
// in parameters.
type Battery struct {
	SetCommand   string          `json:"setCommand"`
	Conservation FeatureCommands `json:"conservation"`
	RapidCharge  FeatureCommands `json:"rapidCharge"`
}

type FeatureCommands struct {
	GetCommand string        `json:"getCommand"`
	Parameters EnableDisable `json:"parameters"`
}

type EnableDisable struct {
	Enable  uint64 `json:"enable"`
	Disable uint64 `json:"disable"`
}
