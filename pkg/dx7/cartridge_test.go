package dx7

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestCartridgeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	var c Cartridge
	for i := range c.Voices {
		c.Voices[i] = RandomVoice(rng)
	}
	c.Voices[0] = brass1()

	data := c.Bytes()
	if len(data) != CartridgeSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(data), CartridgeSize)
	}
	if !bytes.Equal(data[:VoicePackedSize], brass1Packed) {
		t.Errorf("slot 1 bytes differ from BRASS 1")
	}

	parsed, err := ParseCartridge(data)
	if err != nil {
		t.Fatalf("ParseCartridge() error = %v", err)
	}
	if parsed != c {
		t.Error("ParseCartridge(c.Bytes()) != c")
	}
	if again := parsed.Bytes(); !bytes.Equal(again, data) {
		t.Error("re-encoded cartridge differs")
	}
}

func TestCartridgeBytesSlotOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	var c Cartridge
	for i := range c.Voices {
		c.Voices[i] = RandomVoice(rng)
	}

	data := c.Bytes()
	for i, v := range c.Voices {
		slot := data[i*VoicePackedSize : (i+1)*VoicePackedSize]
		if !bytes.Equal(slot, v.PackedBytes()) {
			t.Errorf("slot %d bytes differ from Voice.PackedBytes()", i+1)
		}
	}
}

func TestParseCartridgeErrors(t *testing.T) {
	if _, err := ParseCartridge(make([]byte, CartridgeSize-1)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("ParseCartridge(4095 bytes) error = %v, want ErrInvalidLength", err)
	}

	data := NewCartridge().Bytes()
	data[2*VoicePackedSize] = 0x7F  // slot 3, OP6 R1
	data[20*VoicePackedSize] = 0x7F // slot 21
	_, err := ParseCartridge(data)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("ParseCartridge() error = %v, want ErrInvalidData", err)
	}
	if !strings.HasPrefix(err.Error(), "voice 3:") {
		t.Errorf("ParseCartridge() error = %q, want the lowest slot", err)
	}
}

func TestCartridgeVoice(t *testing.T) {
	c := NewCartridge()
	c.Voices[31] = brass1()

	v, err := c.Voice(32)
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "BRASS   1" {
		t.Errorf("Voice(32).Name = %q", v.Name)
	}
	for _, slot := range []int{0, 33} {
		if _, err := c.Voice(slot); err == nil {
			t.Errorf("Voice(%d) succeeded, want error", slot)
		}
	}

	names := c.Names()
	if len(names) != VoiceCount || names[0] != "INIT VOICE" || names[31] != "BRASS   1" {
		t.Errorf("Names() = %v", names)
	}
}
