package dx7

import (
	"fmt"
	"math/rand/v2"
)

const (
	OperatorSize       = 21
	OperatorPackedSize = 17
)

// OperatorMode selects whether the operator frequency follows the key
// (Ratio) or is fixed.
type OperatorMode int

const (
	Ratio OperatorMode = iota
	Fixed
)

func (m OperatorMode) String() string {
	if m == Fixed {
		return "fixed"
	}
	return "ratio"
}

func (m OperatorMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OperatorMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ratio":
		*m = Ratio
	case "fixed":
		*m = Fixed
	default:
		return fmt.Errorf("unknown operator mode %q", text)
	}
	return nil
}

// Operator is one of the six sound generating units of a voice
type Operator struct {
	EG                   Envelope             `json:"eg" yaml:"eg"`
	KeyboardLevelScaling KeyboardLevelScaling `json:"kbd_level_scaling" yaml:"kbd_level_scaling"`
	KeyboardRateScaling  Depth                `json:"kbd_rate_scaling" yaml:"kbd_rate_scaling"`
	AmpModSensitivity    Sensitivity          `json:"amp_mod_sens" yaml:"amp_mod_sens"`
	KeyVelocitySens      Depth                `json:"key_vel_sens" yaml:"key_vel_sens"`
	OutputLevel          Level                `json:"output_level" yaml:"output_level"`
	Mode                 OperatorMode         `json:"mode" yaml:"mode"`
	Coarse               Coarse               `json:"coarse" yaml:"coarse"`
	Fine                 Level                `json:"fine" yaml:"fine"`
	Detune               Detune               `json:"detune" yaml:"detune"`
}

// Unpacked operator offsets.
const (
	opEG          = 0
	opKLS         = 8
	opRateScaling = 13
	opAMS         = 14
	opKVS         = 15
	opOutputLevel = 16
	opMode        = 17
	opCoarse      = 18
	opFine        = 19
	opDetune      = 20
)

var operatorLayout = concat(
	dataBytes("EG", opEG, 0, EnvelopeSize),
	kbdLevelScalingLayout.shifted(opKLS, 8),
	layout{
		{name: "RS", unpacked: opRateScaling, packed: 12, start: 0, length: 3},
		{name: "DET", unpacked: opDetune, packed: 12, start: 3, length: 4},
		{name: "AMS", unpacked: opAMS, packed: 13, start: 0, length: 2},
		{name: "KVS", unpacked: opKVS, packed: 13, start: 2, length: 3},
		{name: "OL", unpacked: opOutputLevel, packed: 14, start: 0, length: 7},
		{name: "MODE", unpacked: opMode, packed: 15, start: 0, length: 1},
		{name: "COARSE", unpacked: opCoarse, packed: 15, start: 1, length: 5},
		{name: "FINE", unpacked: opFine, packed: 16, start: 0, length: 7},
	},
)

// DefaultOperator returns an operator as found in INIT VOICE, with the
// output level at zero.
func DefaultOperator() Operator {
	return Operator{
		EG:                   DefaultEnvelope(),
		KeyboardLevelScaling: DefaultKeyboardLevelScaling(),
		KeyboardRateScaling:  DefaultDepth(),
		AmpModSensitivity:    DefaultSensitivity(),
		KeyVelocitySens:      DefaultDepth(),
		OutputLevel:          DefaultLevel(),
		Mode:                 Ratio,
		Coarse:               DefaultCoarse(),
		Fine:                 DefaultLevel(),
		Detune:               DefaultDetune(),
	}
}

// RandomOperator returns an operator with every parameter randomized.
func RandomOperator(rng *rand.Rand) Operator {
	mode := Ratio
	if coin(rng) {
		mode = Fixed
	}
	return Operator{
		EG:                   RandomEnvelope(rng),
		KeyboardLevelScaling: RandomKeyboardLevelScaling(rng),
		KeyboardRateScaling:  RandomDepth(rng),
		AmpModSensitivity:    RandomSensitivity(rng),
		KeyVelocitySens:      RandomDepth(rng),
		OutputLevel:          RandomLevel(rng),
		Mode:                 mode,
		Coarse:               RandomCoarse(rng),
		Fine:                 RandomLevel(rng),
		Detune:               RandomDetune(rng),
	}
}

func coin(rng *rand.Rand) bool {
	if rng == nil {
		return rand.IntN(2) == 1
	}
	return rng.IntN(2) == 1
}

// PackOperator converts 21 unpacked operator bytes into the 17 byte packed
// form. Values are not validated.
func PackOperator(data []byte) ([]byte, error) {
	if err := checkLength(data, OperatorSize); err != nil {
		return nil, err
	}
	out := make([]byte, OperatorPackedSize)
	operatorLayout.pack(data, out)
	return out, nil
}

// UnpackOperator converts 17 packed operator bytes into the 21 byte unpacked form.
func UnpackOperator(data []byte) ([]byte, error) {
	if err := checkLength(data, OperatorPackedSize); err != nil {
		return nil, err
	}
	out := make([]byte, OperatorSize)
	operatorLayout.unpack(data, out)
	return out, nil
}

// ParseOperator validates 21 unpacked bytes into an Operator.
func ParseOperator(data []byte) (Operator, error) {
	if err := checkLength(data, OperatorSize); err != nil {
		return Operator{}, err
	}

	var op Operator
	var err error

	if op.EG, err = ParseEnvelope(data[opEG : opEG+EnvelopeSize]); err != nil {
		return Operator{}, shiftOffset(err, opEG)
	}
	if op.KeyboardLevelScaling, err = ParseKeyboardLevelScaling(data[opKLS : opKLS+KeyboardLevelScalingSize]); err != nil {
		return Operator{}, shiftOffset(err, opKLS)
	}
	if op.KeyboardRateScaling, err = DepthFromByte(data[opRateScaling]); err != nil {
		return Operator{}, invalidAt(opRateScaling, err)
	}
	if op.AmpModSensitivity, err = SensitivityFromByte(data[opAMS]); err != nil {
		return Operator{}, invalidAt(opAMS, err)
	}
	if op.KeyVelocitySens, err = DepthFromByte(data[opKVS]); err != nil {
		return Operator{}, invalidAt(opKVS, err)
	}
	if op.OutputLevel, err = LevelFromByte(data[opOutputLevel]); err != nil {
		return Operator{}, invalidAt(opOutputLevel, err)
	}
	switch data[opMode] {
	case 0:
		op.Mode = Ratio
	case 1:
		op.Mode = Fixed
	default:
		return Operator{}, invalidAt(opMode, fmt.Errorf("operator mode: expected 0 or 1, got %d", data[opMode]))
	}
	if op.Coarse, err = CoarseFromByte(data[opCoarse]); err != nil {
		return Operator{}, invalidAt(opCoarse, err)
	}
	if op.Fine, err = LevelFromByte(data[opFine]); err != nil {
		return Operator{}, invalidAt(opFine, err)
	}
	if op.Detune, err = DetuneFromByte(data[opDetune]); err != nil {
		return Operator{}, invalidAt(opDetune, err)
	}
	return op, nil
}

// Bytes returns the 21 unpacked bytes of the operator.
func (op Operator) Bytes() []byte {
	data := make([]byte, 0, OperatorSize)
	data = append(data, op.EG.Bytes()...)
	data = append(data, op.KeyboardLevelScaling.Bytes()...)
	return append(data,
		op.KeyboardRateScaling.Byte(),
		op.AmpModSensitivity.Byte(),
		op.KeyVelocitySens.Byte(),
		op.OutputLevel.Byte(),
		byte(op.Mode),
		op.Coarse.Byte(),
		op.Fine.Byte(),
		op.Detune.Byte(),
	)
}

func (op Operator) DataSize() int { return OperatorSize }

func (op Operator) String() string {
	return fmt.Sprintf("EG: %s\nKLS: %s\nRS=%d AMS=%d KVS=%d OL=%d mode=%s coarse=%d fine=%d detune=%d",
		op.EG, op.KeyboardLevelScaling,
		op.KeyboardRateScaling.Value(), op.AmpModSensitivity.Value(), op.KeyVelocitySens.Value(),
		op.OutputLevel.Value(), op.Mode, op.Coarse.Value(), op.Fine.Value(), op.Detune.Value())
}
