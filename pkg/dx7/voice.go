package dx7

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	VoiceSize       = 155
	VoicePackedSize = 128
	OperatorCount   = 6
)

// Voice is a complete DX7 patch. Operators[0] is OP1; on the wire the
// operators are stored from OP6 down to OP1.
type Voice struct {
	Operators           [OperatorCount]Operator `json:"operators" yaml:"operators"`
	PitchEnvelope       Envelope                `json:"peg" yaml:"peg"`
	Algorithm           Algorithm               `json:"alg" yaml:"alg"`
	Feedback            Depth                   `json:"feedback" yaml:"feedback"`
	OscillatorSync      bool                    `json:"osc_sync" yaml:"osc_sync"`
	LFO                 LFO                     `json:"lfo" yaml:"lfo"`
	PitchModSensitivity Depth                   `json:"pitch_mod_sens" yaml:"pitch_mod_sens"`
	Transpose           Transpose               `json:"transpose" yaml:"transpose"`
	Name                VoiceName               `json:"name" yaml:"name"`
}

// Unpacked voice offsets.
const (
	vcPEG       = OperatorCount * OperatorSize
	vcAlgorithm = vcPEG + EnvelopeSize
	vcFeedback  = vcAlgorithm + 1
	vcOscSync   = vcFeedback + 1
	vcLFO       = vcOscSync + 1
	vcPMS       = vcLFO + LFOSize
	vcTranspose = vcPMS + 1
	vcName      = vcTranspose + 1
)

var voiceLayout = func() layout {
	var l layout
	for i := range OperatorCount {
		l = append(l, operatorLayout.shifted(i*OperatorSize, i*OperatorPackedSize)...)
	}
	return concat(
		l,
		dataBytes("PEG", vcPEG, 102, EnvelopeSize),
		layout{
			{name: "ALG", unpacked: vcAlgorithm, packed: 110, start: 0, length: 5},
			{name: "FB", unpacked: vcFeedback, packed: 111, start: 0, length: 3},
			{name: "OKS", unpacked: vcOscSync, packed: 111, start: 3, length: 1},
		},
		lfoLayout.shifted(vcLFO, 112),
		layout{
			{name: "PMS", unpacked: vcPMS, packed: 116, start: 4, length: 3},
			{name: "TRNSP", unpacked: vcTranspose, packed: 117, start: 0, length: 7},
		},
		dataBytes("NAME", vcName, 118, VoiceNameSize),
	)
}()

// PackVoice converts a 155 byte unpacked voice into the 128 byte packed form
// used in cartridges.
func PackVoice(data []byte) ([]byte, error) {
	if err := checkLength(data, VoiceSize); err != nil {
		return nil, err
	}
	out := make([]byte, VoicePackedSize)
	voiceLayout.pack(data, out)
	return out, nil
}

// UnpackVoice is the inverse of PackVoice.
func UnpackVoice(data []byte) ([]byte, error) {
	if err := checkLength(data, VoicePackedSize); err != nil {
		return nil, err
	}
	out := make([]byte, VoiceSize)
	voiceLayout.unpack(data, out)
	return out, nil
}

// ParseVoice validates a 155 byte unpacked voice. Error offsets are relative
// to data.
func ParseVoice(data []byte) (Voice, error) {
	if err := checkLength(data, VoiceSize); err != nil {
		return Voice{}, err
	}

	var v Voice
	var err error

	for i := range OperatorCount {
		base := i * OperatorSize
		op, err := ParseOperator(data[base : base+OperatorSize])
		if err != nil {
			return Voice{}, fmt.Errorf("OP%d: %w", OperatorCount-i, shiftOffset(err, base))
		}
		v.Operators[OperatorCount-1-i] = op
	}
	if v.PitchEnvelope, err = ParseEnvelope(data[vcPEG : vcPEG+EnvelopeSize]); err != nil {
		return Voice{}, shiftOffset(err, vcPEG)
	}
	if v.Algorithm, err = AlgorithmFromByte(data[vcAlgorithm]); err != nil {
		return Voice{}, invalidAt(vcAlgorithm, err)
	}
	if v.Feedback, err = DepthFromByte(data[vcFeedback]); err != nil {
		return Voice{}, invalidAt(vcFeedback, err)
	}
	if v.OscillatorSync, err = parseBool(data[vcOscSync], "oscillator sync"); err != nil {
		return Voice{}, invalidAt(vcOscSync, err)
	}
	if v.LFO, err = ParseLFO(data[vcLFO : vcLFO+LFOSize]); err != nil {
		return Voice{}, shiftOffset(err, vcLFO)
	}
	if v.PitchModSensitivity, err = DepthFromByte(data[vcPMS]); err != nil {
		return Voice{}, invalidAt(vcPMS, err)
	}
	if v.Transpose, err = TransposeFromByte(data[vcTranspose]); err != nil {
		return Voice{}, invalidAt(vcTranspose, err)
	}
	if v.Name, err = ParseVoiceName(data[vcName : vcName+VoiceNameSize]); err != nil {
		return Voice{}, shiftOffset(err, vcName)
	}
	return v, nil
}

// ParsePackedVoice parses a 128 byte packed voice.
func ParsePackedVoice(data []byte) (Voice, error) {
	unpacked, err := UnpackVoice(data)
	if err != nil {
		return Voice{}, err
	}
	return ParseVoice(unpacked)
}

// Bytes returns the 155 unpacked bytes of the voice.
func (v Voice) Bytes() []byte {
	data := make([]byte, 0, VoiceSize)
	for i := OperatorCount - 1; i >= 0; i-- {
		data = append(data, v.Operators[i].Bytes()...)
	}
	data = append(data, v.PitchEnvelope.Bytes()...)
	data = append(data, v.Algorithm.Byte(), v.Feedback.Byte(), boolByte(v.OscillatorSync))
	data = append(data, v.LFO.Bytes()...)
	data = append(data, v.PitchModSensitivity.Byte(), v.Transpose.Byte())
	return append(data, v.Name.Bytes()...)
}

// PackedBytes returns the 128 packed bytes of the voice.
func (v Voice) PackedBytes() []byte {
	out := make([]byte, VoicePackedSize)
	voiceLayout.pack(v.Bytes(), out)
	return out
}

func (v Voice) DataSize() int { return VoiceSize }

// InitVoice returns the INIT VOICE patch: a single sine carrier on OP1.
func InitVoice() Voice {
	v := Voice{
		PitchEnvelope: Envelope{
			Rates:  [4]Rate{rate(99), rate(99), rate(99), rate(99)},
			Levels: [4]Level{level(50), level(50), level(50), level(50)},
		},
		Algorithm:           DefaultAlgorithm(),
		Feedback:            DefaultDepth(),
		OscillatorSync:      true,
		LFO:                 DefaultLFO(),
		PitchModSensitivity: depth(3),
		Transpose:           DefaultTranspose(),
		Name:                "INIT VOICE",
	}
	for i := range v.Operators {
		v.Operators[i] = DefaultOperator()
	}
	v.Operators[0].OutputLevel = level(99)
	return v
}

// RandomVoice returns a voice with every parameter randomized.
func RandomVoice(rng *rand.Rand) Voice {
	v := Voice{
		PitchEnvelope:       RandomEnvelope(rng),
		Algorithm:           RandomAlgorithm(rng),
		Feedback:            RandomDepth(rng),
		OscillatorSync:      coin(rng),
		LFO:                 RandomLFO(rng),
		PitchModSensitivity: RandomDepth(rng),
		Transpose:           RandomTranspose(rng),
		Name:                RandomVoiceName(rng),
	}
	for i := range v.Operators {
		v.Operators[i] = RandomOperator(rng)
	}
	return v
}

func (v Voice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Name.Bytes())
	for i, op := range v.Operators {
		fmt.Fprintf(&b, "OP%d %s\n", i+1, op)
	}
	fmt.Fprintf(&b, "PEG: %s\n", v.PitchEnvelope)
	fmt.Fprintf(&b, "ALG=%d feedback=%d osc sync=%t\n", v.Algorithm.Value(), v.Feedback.Value(), v.OscillatorSync)
	fmt.Fprintf(&b, "LFO: %s pms=%d\n", v.LFO, v.PitchModSensitivity.Value())
	fmt.Fprintf(&b, "transpose=%d", v.Transpose.Value())
	return b.String()
}
