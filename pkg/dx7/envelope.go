package dx7

import (
	"fmt"
	"math/rand/v2"
)

// EnvelopeSize is the size of an envelope in both the packed and the unpacked
// format. Envelopes are never bit-packed.
const EnvelopeSize = 8

// Envelope is a four-stage rate/level envelope generator, used for operator
// amplitude and for voice pitch.
type Envelope struct {
	Rates  [4]Rate  `json:"rates" yaml:"rates,flow"`
	Levels [4]Level `json:"levels" yaml:"levels,flow"`
}

// DefaultEnvelope returns the envelope of an initialized operator.
func DefaultEnvelope() Envelope {
	return Envelope{
		Rates:  [4]Rate{rate(99), rate(99), rate(99), rate(99)},
		Levels: [4]Level{level(99), level(99), level(99), level(0)},
	}
}

// NewEnvelope builds an envelope from plain integers.
func NewEnvelope(rates, levels [4]int) (Envelope, error) {
	var e Envelope
	for i := range 4 {
		r, err := NewRate(rates[i])
		if err != nil {
			return Envelope{}, fmt.Errorf("R%d: %w", i+1, err)
		}
		l, err := NewLevel(levels[i])
		if err != nil {
			return Envelope{}, fmt.Errorf("L%d: %w", i+1, err)
		}
		e.Rates[i] = r
		e.Levels[i] = l
	}
	return e, nil
}

// ADSR makes an envelope that behaves like an ADSR: with L1=L2=99, R2=99 and
// L4=0, R1 is the attack, R3 the decay, L3 the sustain and R4 the release.
func ADSR(attack, decay Rate, sustain Level, release Rate) Envelope {
	return Envelope{
		Rates:  [4]Rate{attack, rate(99), decay, release},
		Levels: [4]Level{level(99), level(99), sustain, level(0)},
	}
}

// RandomEnvelope returns an envelope with random rates and levels.
func RandomEnvelope(rng *rand.Rand) Envelope {
	var e Envelope
	for i := range 4 {
		e.Rates[i] = RandomRate(rng)
		e.Levels[i] = RandomLevel(rng)
	}
	return e
}

// ParseEnvelope reads R1...R4 followed by L1...L4.
func ParseEnvelope(data []byte) (Envelope, error) {
	if err := checkLength(data, EnvelopeSize); err != nil {
		return Envelope{}, err
	}
	var e Envelope
	for i := range 4 {
		r, err := RateFromByte(data[i])
		if err != nil {
			return Envelope{}, invalidAt(i, err)
		}
		l, err := LevelFromByte(data[4+i])
		if err != nil {
			return Envelope{}, invalidAt(4+i, err)
		}
		e.Rates[i] = r
		e.Levels[i] = l
	}
	return e, nil
}

// Bytes returns the eight SysEx bytes of the envelope.
func (e Envelope) Bytes() []byte {
	data := make([]byte, 0, EnvelopeSize)
	for _, r := range e.Rates {
		data = append(data, r.Byte())
	}
	for _, l := range e.Levels {
		data = append(data, l.Byte())
	}
	return data
}

func (e Envelope) DataSize() int { return EnvelopeSize }

func (e Envelope) String() string {
	return fmt.Sprintf("R1=%d L1=%d R2=%d L2=%d R3=%d L3=%d R4=%d L4=%d",
		e.Rates[0].Value(), e.Levels[0].Value(),
		e.Rates[1].Value(), e.Levels[1].Value(),
		e.Rates[2].Value(), e.Levels[2].Value(),
		e.Rates[3].Value(), e.Levels[3].Value())
}
