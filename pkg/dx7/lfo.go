package dx7

import (
	"fmt"
	"math/rand/v2"
)

const (
	LFOSize       = 6
	LFOPackedSize = 5
)

// LFOWaveform is the shape of the LFO.
type LFOWaveform int

const (
	Triangle LFOWaveform = iota
	SawDown
	SawUp
	Square
	Sine
	SampleAndHold
)

var waveformNames = [...]string{"TRIANGLE", "SAW DOWN", "SAW UP", "SQUARE", "SINE", "SAMPLE & HOLD"}

func (w LFOWaveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("LFOWaveform(%d)", int(w))
	}
	return waveformNames[w]
}

func (w LFOWaveform) MarshalText() ([]byte, error) {
	if w < 0 || int(w) >= len(waveformNames) {
		return nil, fmt.Errorf("invalid LFO waveform %d", int(w))
	}
	return []byte(w.String()), nil
}

func (w *LFOWaveform) UnmarshalText(text []byte) error {
	for i, name := range waveformNames {
		if name == string(text) {
			*w = LFOWaveform(i)
			return nil
		}
	}
	return fmt.Errorf("unknown LFO waveform %q", text)
}

// LFOWaveformFromByte decodes a waveform byte. Unknown bytes decode as
// Triangle and are logged, never rejected.
func LFOWaveformFromByte(b byte) LFOWaveform {
	if int(b) >= len(waveformNames) {
		logger().Warn("unknown LFO waveform, using triangle", "byte", b)
		return Triangle
	}
	return LFOWaveform(b)
}

// LFO holds the low frequency oscillator settings of a voice. Pitch
// modulation sensitivity is a voice parameter, see Voice.
type LFO struct {
	Speed    Level       `json:"speed" yaml:"speed"`
	Delay    Level       `json:"delay" yaml:"delay"`
	PMD      Level       `json:"pmd" yaml:"pmd"`
	AMD      Level       `json:"amd" yaml:"amd"`
	Sync     bool        `json:"sync" yaml:"sync"`
	Waveform LFOWaveform `json:"waveform" yaml:"waveform"`
}

// DefaultLFO is the LFO of INIT VOICE.
func DefaultLFO() LFO {
	return LFO{
		Speed:    level(35),
		Delay:    DefaultLevel(),
		PMD:      DefaultLevel(),
		AMD:      DefaultLevel(),
		Sync:     true,
		Waveform: Triangle,
	}
}

// RandomLFO returns LFO settings with every field chosen at random.
func RandomLFO(rng *rand.Rand) LFO {
	var w int
	if rng == nil {
		w = rand.IntN(len(waveformNames))
	} else {
		w = rng.IntN(len(waveformNames))
	}
	return LFO{
		Speed:    RandomLevel(rng),
		Delay:    RandomLevel(rng),
		PMD:      RandomLevel(rng),
		AMD:      RandomLevel(rng),
		Sync:     coin(rng),
		Waveform: LFOWaveform(w),
	}
}

const (
	lfoSync     = 4
	lfoWaveform = 5
)

var lfoLayout = concat(
	dataBytes("SPEED/DELAY/PMD/AMD", 0, 0, 4),
	layout{
		{name: "SYNC", unpacked: lfoSync, packed: 4, start: 0, length: 1},
		{name: "WAVE", unpacked: lfoWaveform, packed: 4, start: 1, length: 3},
	},
)

// PackLFO combines the sync and waveform bytes into one.
func PackLFO(data []byte) ([]byte, error) {
	if err := checkLength(data, LFOSize); err != nil {
		return nil, err
	}
	out := make([]byte, LFOPackedSize)
	lfoLayout.pack(data, out)
	return out, nil
}

// UnpackLFO splits the combined sync/waveform byte.
func UnpackLFO(data []byte) ([]byte, error) {
	if err := checkLength(data, LFOPackedSize); err != nil {
		return nil, err
	}
	out := make([]byte, LFOSize)
	lfoLayout.unpack(data, out)
	return out, nil
}

// ParseLFO reads speed, delay, pmd, amd, sync and waveform.
func ParseLFO(data []byte) (LFO, error) {
	if err := checkLength(data, LFOSize); err != nil {
		return LFO{}, err
	}
	var lfo LFO
	for i, dst := range []*Level{&lfo.Speed, &lfo.Delay, &lfo.PMD, &lfo.AMD} {
		l, err := LevelFromByte(data[i])
		if err != nil {
			return LFO{}, invalidAt(i, err)
		}
		*dst = l
	}
	sync, err := parseBool(data[lfoSync], "LFO sync")
	if err != nil {
		return LFO{}, invalidAt(lfoSync, err)
	}
	lfo.Sync = sync
	lfo.Waveform = LFOWaveformFromByte(data[lfoWaveform])
	return lfo, nil
}

// Bytes returns the six unpacked LFO bytes.
func (l LFO) Bytes() []byte {
	return []byte{
		l.Speed.Byte(),
		l.Delay.Byte(),
		l.PMD.Byte(),
		l.AMD.Byte(),
		boolByte(l.Sync),
		byte(l.Waveform),
	}
}

func (l LFO) DataSize() int { return LFOSize }

func (l LFO) String() string {
	return fmt.Sprintf("speed=%d delay=%d pmd=%d amd=%d sync=%t wave=%s",
		l.Speed.Value(), l.Delay.Value(), l.PMD.Value(), l.AMD.Value(), l.Sync, l.Waveform)
}

func parseBool(b byte, name string) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%s: expected 0 or 1, got %d", name, b)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
