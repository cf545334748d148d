// Package converter provides conversion between DX7 SysEx dumps, Standard
// MIDI Files carrying those dumps, and editable JSON/YAML documents.
package converter

import (
	"fmt"

	"github.com/james-see/dx7syx/pkg/dx7"
)

// Kind tells whether a document holds a single voice or a cartridge
type Kind string

const (
	KindVoice     Kind = "voice"
	KindCartridge Kind = "cartridge"
)

// Document is the interchange form of a dump
type Document struct {
	Kind    Kind        `json:"kind" yaml:"kind"`
	Channel int         `json:"channel,omitempty" yaml:"channel,omitempty"` // MIDI channel 1-16, 0 means the device default
	Voices  []dx7.Voice `json:"voices" yaml:"voices"`
}

// NewVoiceDocument wraps a single voice
func NewVoiceDocument(channel dx7.Channel, v dx7.Voice) *Document {
	return &Document{Kind: KindVoice, Channel: channel.Value(), Voices: []dx7.Voice{v}}
}

// NewCartridgeDocument wraps all 32 voices of a cartridge
func NewCartridgeDocument(channel dx7.Channel, c dx7.Cartridge) *Document {
	return &Document{Kind: KindCartridge, Channel: channel.Value(), Voices: c.Voices[:]}
}

// Validate checks the kind, channel and voice count
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("nil document")
	}
	if d.Channel != 0 {
		if _, err := dx7.NewChannel(d.Channel); err != nil {
			return err
		}
	}
	switch d.Kind {
	case KindVoice:
		if len(d.Voices) != 1 {
			return fmt.Errorf("voice document must hold exactly 1 voice, got %d", len(d.Voices))
		}
	case KindCartridge:
		if len(d.Voices) > dx7.VoiceCount {
			return fmt.Errorf("cartridge document holds %d voices, maximum is %d", len(d.Voices), dx7.VoiceCount)
		}
	default:
		return fmt.Errorf("unknown document kind %q", d.Kind)
	}
	return nil
}

// MIDIChannel returns the document channel, or def when none is set
func (d *Document) MIDIChannel(def dx7.Channel) dx7.Channel {
	if d.Channel == 0 {
		return def
	}
	ch, err := dx7.NewChannel(d.Channel)
	if err != nil {
		return def
	}
	return ch
}

// Voice returns the voice of a voice document
func (d *Document) Voice() (dx7.Voice, error) {
	if err := d.Validate(); err != nil {
		return dx7.Voice{}, err
	}
	if d.Kind != KindVoice {
		return dx7.Voice{}, fmt.Errorf("document is a %s, not a voice", d.Kind)
	}
	return d.Voices[0], nil
}

// Cartridge returns the voices of a cartridge document. Slots beyond the
// listed voices hold INIT VOICE.
func (d *Document) Cartridge() (dx7.Cartridge, error) {
	if err := d.Validate(); err != nil {
		return dx7.Cartridge{}, err
	}
	if d.Kind != KindCartridge {
		return dx7.Cartridge{}, fmt.Errorf("document is a %s, not a cartridge", d.Kind)
	}
	c := dx7.NewCartridge()
	copy(c.Voices[:], d.Voices)
	return c, nil
}

// Device interface for device-specific dump handling
type Device interface {
	Name() string
	ID() uint8
	ParseSyx(data []byte) (*Document, error)
	GenerateSyx(doc *Document) ([]byte, error)
}

// Converter handles format conversions
type Converter struct {
	device Device
}

// New creates a new Converter with the specified device
func New(device Device) *Converter {
	return &Converter{device: device}
}

// GetDevice returns the current device
func (c *Converter) GetDevice() Device {
	return c.device
}

// SetDevice sets the device for conversion
func (c *Converter) SetDevice(device Device) {
	c.device = device
}
