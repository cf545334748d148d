package dx7

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
)

// VoiceNameSize is the fixed length of a voice name on the wire.
const VoiceNameSize = 10

// VoiceName is a voice name of at most ten 7-bit ASCII characters. It is
// stored without trailing padding and padded with spaces on output.
type VoiceName string

// NewVoiceName validates s as a voice name.
func NewVoiceName(s string) (VoiceName, error) {
	if len(s) > VoiceNameSize {
		return "", fmt.Errorf("voice name %q is longer than %d characters", s, VoiceNameSize)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return "", fmt.Errorf("voice name %q: non-ASCII byte at %d", s, i)
		}
	}
	return VoiceName(strings.TrimRight(s, " ")), nil
}

// ParseVoiceName reads ten name bytes.
func ParseVoiceName(data []byte) (VoiceName, error) {
	if err := checkLength(data, VoiceNameSize); err != nil {
		return "", err
	}
	for i, b := range data {
		if b > 0x7F {
			return "", invalidAt(i, fmt.Errorf("voice name: non-ASCII byte 0x%02X", b))
		}
	}
	return VoiceName(strings.TrimRight(string(data), " ")), nil
}

// Bytes returns exactly ten bytes, right padded with spaces. A name that did
// not come from NewVoiceName or ParseVoiceName is cut to ten characters and
// every non-ASCII character becomes '?'.
func (n VoiceName) Bytes() []byte {
	data := bytes.Repeat([]byte{' '}, VoiceNameSize)
	i := 0
	for _, r := range string(n) {
		if i == VoiceNameSize {
			break
		}
		if r > 0x7F {
			r = '?'
		}
		data[i] = byte(r)
		i++
	}
	return data
}

func (n VoiceName) DataSize() int { return VoiceNameSize }

func (n VoiceName) String() string { return string(n) }

func (n VoiceName) MarshalText() ([]byte, error) {
	return []byte(n), nil
}

func (n *VoiceName) UnmarshalText(text []byte) error {
	v, err := NewVoiceName(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

var (
	nameConsonants = "BCDFGHJKLMNPRSTVWZ"
	nameVowels     = "AEIOU"
)

// RandomVoiceName builds a pronounceable name from five syllables.
func RandomVoiceName(rng *rand.Rand) VoiceName {
	pick := func(s string) byte {
		if rng == nil {
			return s[rand.IntN(len(s))]
		}
		return s[rng.IntN(len(s))]
	}
	var b strings.Builder
	for range VoiceNameSize / 2 {
		b.WriteByte(pick(nameConsonants))
		b.WriteByte(pick(nameVowels))
	}
	return VoiceName(b.String())
}
