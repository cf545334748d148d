package dx7

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	VoiceCount    = 32
	CartridgeSize = VoiceCount * VoicePackedSize
)

// Cartridge is a bank of 32 voices.
type Cartridge struct {
	Voices [VoiceCount]Voice `json:"voices" yaml:"voices"`
}

// NewCartridge returns a cartridge filled with INIT VOICE.
func NewCartridge() Cartridge {
	var c Cartridge
	for i := range c.Voices {
		c.Voices[i] = InitVoice()
	}
	return c
}

// ParseCartridge parses 4096 bytes of packed voices. Slots are decoded
// concurrently; on failure the error of the lowest failing slot is returned.
func ParseCartridge(data []byte) (Cartridge, error) {
	if err := checkLength(data, CartridgeSize); err != nil {
		return Cartridge{}, err
	}

	var c Cartridge
	var g errgroup.Group
	errs := make([]error, VoiceCount)
	for i := range VoiceCount {
		g.Go(func() error {
			chunk := data[i*VoicePackedSize : (i+1)*VoicePackedSize]
			v, err := ParsePackedVoice(chunk)
			if err != nil {
				errs[i] = fmt.Errorf("voice %d: %w", i+1, err)
				return errs[i]
			}
			c.Voices[i] = v
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return c, nil
	}
	for _, err := range errs {
		if err != nil {
			return Cartridge{}, err
		}
	}
	return c, nil
}

// Bytes returns the 4096 packed bytes of the cartridge in slot order.
func (c Cartridge) Bytes() []byte {
	data := make([]byte, CartridgeSize)
	var wg sync.WaitGroup
	for i := range c.Voices {
		wg.Add(1)
		go func() {
			defer wg.Done()
			voiceLayout.pack(c.Voices[i].Bytes(), data[i*VoicePackedSize:(i+1)*VoicePackedSize])
		}()
	}
	wg.Wait()
	return data
}

func (c Cartridge) DataSize() int { return CartridgeSize }

// Voice returns the voice in the 1-based slot.
func (c Cartridge) Voice(slot int) (Voice, error) {
	if slot < 1 || slot > VoiceCount {
		return Voice{}, fmt.Errorf("slot %d out of range 1...%d", slot, VoiceCount)
	}
	return c.Voices[slot-1], nil
}

// Names lists the voice names in slot order.
func (c Cartridge) Names() []string {
	names := make([]string, len(c.Voices))
	for i, v := range c.Voices {
		names[i] = v.Name.String()
	}
	return names
}
