package dx7

import (
	"fmt"
	"math/rand/v2"
)

const (
	KeyboardLevelScalingSize       = 5
	KeyboardLevelScalingPackedSize = 4
)

// CurveStyle is the shape of a keyboard level scaling curve.
type CurveStyle int

const (
	Linear CurveStyle = iota
	Exponential
)

func (s CurveStyle) String() string {
	if s == Exponential {
		return "EXP"
	}
	return "LIN"
}

// CurveSign tells whether a scaling curve raises or lowers the level.
type CurveSign int

const (
	Negative CurveSign = iota
	Positive
)

func (s CurveSign) String() string {
	if s == Positive {
		return "+"
	}
	return "-"
}

// ScalingCurve is one of the four keyboard level scaling curves.
type ScalingCurve struct {
	Style CurveStyle
	Sign  CurveSign
}

// LinNeg is the -LIN curve.
func LinNeg() ScalingCurve { return ScalingCurve{Style: Linear, Sign: Negative} }

// ExpNeg is the -EXP curve.
func ExpNeg() ScalingCurve { return ScalingCurve{Style: Exponential, Sign: Negative} }

// ExpPos is the +EXP curve.
func ExpPos() ScalingCurve { return ScalingCurve{Style: Exponential, Sign: Positive} }

// LinPos is the +LIN curve.
func LinPos() ScalingCurve { return ScalingCurve{Style: Linear, Sign: Positive} }

// curveBytes is indexed by the SysEx byte. The mapping is not arithmetic.
var curveBytes = [4]ScalingCurve{
	{Style: Linear, Sign: Negative},
	{Style: Exponential, Sign: Negative},
	{Style: Exponential, Sign: Positive},
	{Style: Linear, Sign: Positive},
}

// ScalingCurveFromByte decodes a curve byte. Only 0...3 are valid.
func ScalingCurveFromByte(b byte) (ScalingCurve, error) {
	if int(b) >= len(curveBytes) {
		return ScalingCurve{}, fmt.Errorf("scaling curve: expected value in range 0...3, got %d", b)
	}
	return curveBytes[b], nil
}

// Byte returns the SysEx byte of the curve.
func (c ScalingCurve) Byte() byte {
	for i, cb := range curveBytes {
		if cb == c {
			return byte(i)
		}
	}
	return 0
}

func (c ScalingCurve) String() string {
	return c.Sign.String() + c.Style.String()
}

func (c ScalingCurve) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ScalingCurve) UnmarshalText(text []byte) error {
	for _, cb := range curveBytes {
		if cb.String() == string(text) {
			*c = cb
			return nil
		}
	}
	return fmt.Errorf("unknown scaling curve %q", text)
}

// Scaling is the depth and curve of one side of the breakpoint.
type Scaling struct {
	Depth Level        `json:"depth" yaml:"depth"`
	Curve ScalingCurve `json:"curve" yaml:"curve"`
}

// KeyboardLevelScaling scales the operator level by keyboard position on
// either side of a breakpoint.
type KeyboardLevelScaling struct {
	Breakpoint Key     `json:"breakpoint" yaml:"breakpoint"`
	Left       Scaling `json:"left" yaml:"left"`
	Right      Scaling `json:"right" yaml:"right"`
}

// DefaultKeyboardLevelScaling has the breakpoint at C3 and no scaling.
func DefaultKeyboardLevelScaling() KeyboardLevelScaling {
	return KeyboardLevelScaling{
		Breakpoint: DefaultKey(),
		Left:       Scaling{Depth: DefaultLevel(), Curve: LinNeg()},
		Right:      Scaling{Depth: DefaultLevel(), Curve: LinNeg()},
	}
}

// RandomKeyboardLevelScaling returns a scaling with every field chosen at random.
func RandomKeyboardLevelScaling(rng *rand.Rand) KeyboardLevelScaling {
	curve := func() ScalingCurve {
		if rng == nil {
			return curveBytes[rand.IntN(len(curveBytes))]
		}
		return curveBytes[rng.IntN(len(curveBytes))]
	}
	return KeyboardLevelScaling{
		Breakpoint: RandomKey(rng),
		Left:       Scaling{Depth: RandomLevel(rng), Curve: curve()},
		Right:      Scaling{Depth: RandomLevel(rng), Curve: curve()},
	}
}

// Unpacked byte order: breakpoint, left depth, right depth, left curve, right curve.
var kbdLevelScalingLayout = concat(
	dataBytes("BP/LD/RD", 0, 0, 3),
	layout{
		{name: "LC", unpacked: 3, packed: 3, start: 0, length: 2},
		{name: "RC", unpacked: 4, packed: 3, start: 2, length: 2},
	},
)

// PackKeyboardLevelScaling combines the two curve bytes into one.
func PackKeyboardLevelScaling(data []byte) ([]byte, error) {
	if err := checkLength(data, KeyboardLevelScalingSize); err != nil {
		return nil, err
	}
	out := make([]byte, KeyboardLevelScalingPackedSize)
	kbdLevelScalingLayout.pack(data, out)
	return out, nil
}

// UnpackKeyboardLevelScaling is the inverse of PackKeyboardLevelScaling.
func UnpackKeyboardLevelScaling(data []byte) ([]byte, error) {
	if err := checkLength(data, KeyboardLevelScalingPackedSize); err != nil {
		return nil, err
	}
	out := make([]byte, KeyboardLevelScalingSize)
	kbdLevelScalingLayout.unpack(data, out)
	return out, nil
}

// ParseKeyboardLevelScaling reads the five unpacked bytes.
func ParseKeyboardLevelScaling(data []byte) (KeyboardLevelScaling, error) {
	if err := checkLength(data, KeyboardLevelScalingSize); err != nil {
		return KeyboardLevelScaling{}, err
	}
	bp, err := KeyFromByte(data[0])
	if err != nil {
		return KeyboardLevelScaling{}, invalidAt(0, err)
	}
	ld, err := LevelFromByte(data[1])
	if err != nil {
		return KeyboardLevelScaling{}, invalidAt(1, err)
	}
	rd, err := LevelFromByte(data[2])
	if err != nil {
		return KeyboardLevelScaling{}, invalidAt(2, err)
	}
	lc, err := ScalingCurveFromByte(data[3])
	if err != nil {
		return KeyboardLevelScaling{}, invalidAt(3, err)
	}
	rc, err := ScalingCurveFromByte(data[4])
	if err != nil {
		return KeyboardLevelScaling{}, invalidAt(4, err)
	}
	return KeyboardLevelScaling{
		Breakpoint: bp,
		Left:       Scaling{Depth: ld, Curve: lc},
		Right:      Scaling{Depth: rd, Curve: rc},
	}, nil
}

// Bytes returns the five unpacked scaling bytes.
func (k KeyboardLevelScaling) Bytes() []byte {
	return []byte{
		k.Breakpoint.Byte(),
		k.Left.Depth.Byte(),
		k.Right.Depth.Byte(),
		k.Left.Curve.Byte(),
		k.Right.Curve.Byte(),
	}
}

func (k KeyboardLevelScaling) DataSize() int { return KeyboardLevelScalingSize }

func (k KeyboardLevelScaling) String() string {
	return fmt.Sprintf("breakpoint = %s, left depth = %d, right depth = %d, left curve = %s, right curve = %s",
		k.Breakpoint.Name(), k.Left.Depth.Value(), k.Right.Depth.Value(), k.Left.Curve, k.Right.Curve)
}
