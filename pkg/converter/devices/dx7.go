// Package devices provides device-specific dump handlers
package devices

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/james-see/dx7syx/pkg/sysex"
)

// DX7 implements the Device interface for the Yamaha DX7
type DX7 struct {
	channel dx7.Channel
}

// NewDX7 creates a DX7 handler that frames dumps on the given channel
// unless a document names its own
func NewDX7(channel dx7.Channel) *DX7 {
	return &DX7{channel: channel}
}

// Name returns the device name
func (d *DX7) Name() string {
	return "Yamaha DX7"
}

// ID returns the manufacturer ID used in SysEx
func (d *DX7) ID() uint8 {
	return sysex.YamahaID
}

// Channel returns the default MIDI channel
func (d *DX7) Channel() dx7.Channel {
	return d.channel
}

// ParseSyx decodes the first DX7 bulk dump in data. Messages from other
// manufacturers and Yamaha messages that are not bulk dumps are skipped. A
// Yamaha bulk dump with a bad header is an error. A bare 155 or 4096 byte payload without framing is
// accepted too.
func (d *DX7) ParseSyx(data []byte) (*converter.Document, error) {
	if len(data) == 0 {
		return nil, errors.New("syx data is empty")
	}

	if data[0] != sysex.Start {
		return d.parsePayload(data)
	}

	msgs, err := sysex.Split(data)
	if err != nil {
		return nil, err
	}
	for i, raw := range msgs {
		if !isBulkDump(raw) {
			slog.Debug("skipping SysEx message", "index", i, "length", len(raw))
			continue
		}
		msg, err := sysex.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		return d.document(msg)
	}
	return nil, fmt.Errorf("no DX7 bulk dump found in %d messages: %w", len(msgs), dx7.ErrUnidentified)
}

// isBulkDump reports whether raw carries the Yamaha ID and the bulk dump
// sub-status. Format and byte count are left to sysex.Parse.
func isBulkDump(raw []byte) bool {
	return len(raw) > 2 && raw[1] == sysex.YamahaID && (raw[2]>>4)&0x07 == 0
}

func (d *DX7) parsePayload(data []byte) (*converter.Document, error) {
	format, err := sysex.Identify(data)
	if err != nil {
		return nil, err
	}
	return d.document(sysex.Message{Header: sysex.NewHeader(d.channel, format), Payload: data})
}

func (d *DX7) document(msg sysex.Message) (*converter.Document, error) {
	switch msg.Header.Format {
	case sysex.FormatVoice:
		v, err := msg.Voice()
		if err != nil {
			return nil, err
		}
		return converter.NewVoiceDocument(msg.Header.Channel, v), nil
	case sysex.FormatCartridge:
		c, err := msg.Cartridge()
		if err != nil {
			return nil, err
		}
		return converter.NewCartridgeDocument(msg.Header.Channel, c), nil
	}
	return nil, fmt.Errorf("unsupported format %s", msg.Header.Format)
}

// GenerateSyx frames a document as a single bulk dump
func (d *DX7) GenerateSyx(doc *converter.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	ch := doc.MIDIChannel(d.channel)

	switch doc.Kind {
	case converter.KindVoice:
		v, err := doc.Voice()
		if err != nil {
			return nil, err
		}
		return sysex.NewVoiceMessage(ch, v).Bytes(), nil
	case converter.KindCartridge:
		c, err := doc.Cartridge()
		if err != nil {
			return nil, err
		}
		return sysex.NewCartridgeMessage(ch, c).Bytes(), nil
	}
	return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
}
