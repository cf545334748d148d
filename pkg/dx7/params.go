package dx7

import (
	"fmt"
	"math/rand/v2"
)

type (
	algorithmSpec   struct{}
	detuneSpec      struct{}
	coarseSpec      struct{}
	depthSpec       struct{}
	sensitivitySpec struct{}
	levelSpec       struct{}
	rateSpec        struct{}
	transposeSpec   struct{}
	keySpec         struct{}
	channelSpec     struct{}
)

func (algorithmSpec) bounds() bounds {
	return bounds{name: "algorithm", min: 1, max: 32, def: 1, offset: -1}
}

func (detuneSpec) bounds() bounds {
	return bounds{name: "detune", min: -7, max: 7, def: 0, offset: 7}
}

func (coarseSpec) bounds() bounds {
	return bounds{name: "coarse", min: 0, max: 31, def: 1}
}

func (depthSpec) bounds() bounds {
	return bounds{name: "depth", min: 0, max: 7, def: 0}
}

func (sensitivitySpec) bounds() bounds {
	return bounds{name: "sensitivity", min: 0, max: 3, def: 0}
}

func (levelSpec) bounds() bounds {
	return bounds{name: "level", min: 0, max: 99, def: 0}
}

func (rateSpec) bounds() bounds {
	return bounds{name: "rate", min: 0, max: 99, def: 99}
}

func (transposeSpec) bounds() bounds {
	return bounds{name: "transpose", min: -24, max: 24, def: 0, offset: 24}
}

func (keySpec) bounds() bounds {
	return bounds{name: "key", min: 0, max: 99, def: 39}
}

func (channelSpec) bounds() bounds {
	return bounds{name: "channel", min: 1, max: 16, def: 1, offset: -1}
}

// Algorithm selects one of the 32 operator routings (1...32, SysEx 0...31).
type Algorithm struct{ ranged[algorithmSpec] }

// Detune is the operator detune (-7...+7, SysEx 0...14).
type Detune struct{ ranged[detuneSpec] }

// Coarse is the operator frequency coarse setting (0...31).
type Coarse struct{ ranged[coarseSpec] }

// Depth (0...7) is used for keyboard rate scaling, key velocity sensitivity,
// feedback and pitch modulation sensitivity.
type Depth struct{ ranged[depthSpec] }

// Sensitivity is the amplitude modulation sensitivity (0...3).
type Sensitivity struct{ ranged[sensitivitySpec] }

// Level (0...99) is used for envelope levels, output level, fine frequency,
// scaling depths and the LFO parameters.
type Level struct{ ranged[levelSpec] }

// Rate is an envelope rate (0...99).
type Rate struct{ ranged[rateSpec] }

// Transpose is the voice key transpose in semitones (-24...+24, SysEx 0...48,
// where 24 is C3).
type Transpose struct{ ranged[transposeSpec] }

// Key is a keyboard position (0...99, A-1 to C8).
type Key struct{ ranged[keySpec] }

// Channel is a MIDI channel (1...16, SysEx 0...15).
type Channel struct{ ranged[channelSpec] }

// NewAlgorithm returns an algorithm, or a RangeError when v is out of bounds.
func NewAlgorithm(v int) (Algorithm, error) {
	r, err := newRanged[algorithmSpec](v)
	return Algorithm{r}, err
}

// AlgorithmFromByte decodes an algorithm from its SysEx data byte.
func AlgorithmFromByte(b byte) (Algorithm, error) {
	r, err := rangedFromByte[algorithmSpec](b)
	return Algorithm{r}, err
}

// DefaultAlgorithm returns the default value (1).
func DefaultAlgorithm() Algorithm { return Algorithm{defaultRanged[algorithmSpec]()} }

// RandomAlgorithm returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomAlgorithm(rng *rand.Rand) Algorithm {
	return Algorithm{randomRanged[algorithmSpec](rng)}
}

// NewDetune returns a detune, or a RangeError when v is out of bounds.
func NewDetune(v int) (Detune, error) {
	r, err := newRanged[detuneSpec](v)
	return Detune{r}, err
}

// DetuneFromByte decodes a detune from its SysEx data byte.
func DetuneFromByte(b byte) (Detune, error) {
	r, err := rangedFromByte[detuneSpec](b)
	return Detune{r}, err
}

// DefaultDetune returns the default value (0).
func DefaultDetune() Detune { return Detune{defaultRanged[detuneSpec]()} }

// RandomDetune returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomDetune(rng *rand.Rand) Detune {
	return Detune{randomRanged[detuneSpec](rng)}
}

// NewCoarse returns a coarse frequency, or a RangeError when v is out of bounds.
func NewCoarse(v int) (Coarse, error) {
	r, err := newRanged[coarseSpec](v)
	return Coarse{r}, err
}

// CoarseFromByte decodes a coarse frequency from its SysEx data byte.
func CoarseFromByte(b byte) (Coarse, error) {
	r, err := rangedFromByte[coarseSpec](b)
	return Coarse{r}, err
}

// DefaultCoarse returns the default value (1).
func DefaultCoarse() Coarse { return Coarse{defaultRanged[coarseSpec]()} }

// RandomCoarse returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomCoarse(rng *rand.Rand) Coarse {
	return Coarse{randomRanged[coarseSpec](rng)}
}

// NewDepth returns a depth, or a RangeError when v is out of bounds.
func NewDepth(v int) (Depth, error) {
	r, err := newRanged[depthSpec](v)
	return Depth{r}, err
}

// DepthFromByte decodes a depth from its SysEx data byte.
func DepthFromByte(b byte) (Depth, error) {
	r, err := rangedFromByte[depthSpec](b)
	return Depth{r}, err
}

// DefaultDepth returns the default value (0).
func DefaultDepth() Depth { return Depth{defaultRanged[depthSpec]()} }

// RandomDepth returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomDepth(rng *rand.Rand) Depth {
	return Depth{randomRanged[depthSpec](rng)}
}

// NewSensitivity returns a sensitivity, or a RangeError when v is out of bounds.
func NewSensitivity(v int) (Sensitivity, error) {
	r, err := newRanged[sensitivitySpec](v)
	return Sensitivity{r}, err
}

// SensitivityFromByte decodes a sensitivity from its SysEx data byte.
func SensitivityFromByte(b byte) (Sensitivity, error) {
	r, err := rangedFromByte[sensitivitySpec](b)
	return Sensitivity{r}, err
}

// DefaultSensitivity returns the default value (0).
func DefaultSensitivity() Sensitivity { return Sensitivity{defaultRanged[sensitivitySpec]()} }

// RandomSensitivity returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomSensitivity(rng *rand.Rand) Sensitivity {
	return Sensitivity{randomRanged[sensitivitySpec](rng)}
}

// NewLevel returns a level, or a RangeError when v is out of bounds.
func NewLevel(v int) (Level, error) {
	r, err := newRanged[levelSpec](v)
	return Level{r}, err
}

// LevelFromByte decodes a level from its SysEx data byte.
func LevelFromByte(b byte) (Level, error) {
	r, err := rangedFromByte[levelSpec](b)
	return Level{r}, err
}

// DefaultLevel returns the default value (0).
func DefaultLevel() Level { return Level{defaultRanged[levelSpec]()} }

// RandomLevel returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomLevel(rng *rand.Rand) Level {
	return Level{randomRanged[levelSpec](rng)}
}

// NewRate returns a rate, or a RangeError when v is out of bounds.
func NewRate(v int) (Rate, error) {
	r, err := newRanged[rateSpec](v)
	return Rate{r}, err
}

// RateFromByte decodes a rate from its SysEx data byte.
func RateFromByte(b byte) (Rate, error) {
	r, err := rangedFromByte[rateSpec](b)
	return Rate{r}, err
}

// DefaultRate returns the default value (99).
func DefaultRate() Rate { return Rate{defaultRanged[rateSpec]()} }

// RandomRate returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomRate(rng *rand.Rand) Rate {
	return Rate{randomRanged[rateSpec](rng)}
}

// NewTranspose returns a transpose, or a RangeError when v is out of bounds.
func NewTranspose(v int) (Transpose, error) {
	r, err := newRanged[transposeSpec](v)
	return Transpose{r}, err
}

// TransposeFromByte decodes a transpose from its SysEx data byte.
func TransposeFromByte(b byte) (Transpose, error) {
	r, err := rangedFromByte[transposeSpec](b)
	return Transpose{r}, err
}

// DefaultTranspose returns the default value (0, no transpose).
func DefaultTranspose() Transpose { return Transpose{defaultRanged[transposeSpec]()} }

// RandomTranspose returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomTranspose(rng *rand.Rand) Transpose {
	return Transpose{randomRanged[transposeSpec](rng)}
}

// NewKey returns a key, or a RangeError when v is out of bounds.
func NewKey(v int) (Key, error) {
	r, err := newRanged[keySpec](v)
	return Key{r}, err
}

// KeyFromByte decodes a key from its SysEx data byte.
func KeyFromByte(b byte) (Key, error) {
	r, err := rangedFromByte[keySpec](b)
	return Key{r}, err
}

// DefaultKey returns the default value (39, C3).
func DefaultKey() Key { return Key{defaultRanged[keySpec]()} }

// RandomKey returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomKey(rng *rand.Rand) Key {
	return Key{randomRanged[keySpec](rng)}
}

var noteNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

// Name returns the note name of the key. Key 0 is A-1 and key 39 is C3.
func (k Key) Name() string {
	n := k.Value() + 9
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1)
}

// NewChannel returns a channel, or a RangeError when v is out of bounds.
func NewChannel(v int) (Channel, error) {
	r, err := newRanged[channelSpec](v)
	return Channel{r}, err
}

// ChannelFromByte decodes a channel from its SysEx data byte.
func ChannelFromByte(b byte) (Channel, error) {
	r, err := rangedFromByte[channelSpec](b)
	return Channel{r}, err
}

// DefaultChannel returns channel 1.
func DefaultChannel() Channel { return Channel{defaultRanged[channelSpec]()} }

// RandomChannel returns a uniformly chosen valid value. A nil rng uses the global source.
func RandomChannel(rng *rand.Rand) Channel {
	return Channel{randomRanged[channelSpec](rng)}
}

// Internal constructors for values known to be in range.
func level(v int) Level { return Level{mustRanged[levelSpec](v)} }
func rate(v int) Rate   { return Rate{mustRanged[rateSpec](v)} }
func depth(v int) Depth { return Depth{mustRanged[depthSpec](v)} }
