// Package sysex frames DX7 voice and cartridge payloads as MIDI System
// Exclusive bulk dump messages.
package sysex

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/james-see/dx7syx/pkg/dx7"
	"gitlab.com/gomidi/midi/v2"
)

// SysEx constants
const (
	Start    = 0xF0
	End      = 0xF7
	YamahaID = 0x43

	// HeaderSize covers manufacturer, sub-status/channel, format and the
	// two byte count bytes.
	HeaderSize = 5
)

// Format identifies the payload of a bulk dump.
type Format byte

const (
	FormatVoice     Format = 0
	FormatCartridge Format = 9
)

func (f Format) String() string {
	switch f {
	case FormatVoice:
		return "voice"
	case FormatCartridge:
		return "cartridge"
	default:
		return fmt.Sprintf("Format(%d)", byte(f))
	}
}

// PayloadSize returns the number of payload bytes for the format, or 0 for
// an unknown format.
func (f Format) PayloadSize() int {
	switch f {
	case FormatVoice:
		return dx7.VoiceSize
	case FormatCartridge:
		return dx7.CartridgeSize
	default:
		return 0
	}
}

// ParseFormat decodes a format byte.
func ParseFormat(b byte) (Format, error) {
	switch f := Format(b); f {
	case FormatVoice, FormatCartridge:
		return f, nil
	}
	return 0, fmt.Errorf("unknown format byte %d", b)
}

// Header is the part of a bulk dump between 0xF0 and the payload.
type Header struct {
	SubStatus byte
	Channel   dx7.Channel
	Format    Format
	ByteCount int
}

// NewHeader returns a bulk dump header for the format.
func NewHeader(channel dx7.Channel, format Format) Header {
	return Header{
		Channel:   channel,
		Format:    format,
		ByteCount: format.PayloadSize(),
	}
}

// ParseHeader reads the five header bytes that follow 0xF0. Error offsets
// are relative to data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, &dx7.LengthError{Actual: len(data), Expected: HeaderSize}
	}
	if data[0] != YamahaID {
		return Header{}, &dx7.DataError{Offset: 0, Err: fmt.Errorf("manufacturer 0x%02X is not Yamaha", data[0])}
	}

	subStatus := (data[1] >> 4) & 0x07
	if subStatus != 0 {
		return Header{}, &dx7.DataError{Offset: 1, Err: fmt.Errorf("sub-status %d is not a bulk dump", subStatus)}
	}
	channel, err := dx7.ChannelFromByte(data[1] & 0x0F)
	if err != nil {
		return Header{}, &dx7.DataError{Offset: 1, Err: err}
	}

	format, err := ParseFormat(data[2])
	if err != nil {
		return Header{}, &dx7.DataError{Offset: 2, Err: err}
	}

	count := int(data[3])<<7 | int(data[4])
	if count != format.PayloadSize() {
		return Header{}, &dx7.DataError{
			Offset: 3,
			Err:    fmt.Errorf("byte count %d does not match %s size %d", count, format, format.PayloadSize()),
		}
	}

	return Header{
		SubStatus: subStatus,
		Channel:   channel,
		Format:    format,
		ByteCount: count,
	}, nil
}

// Bytes returns the five header bytes. The byte count is split into two
// 7-bit halves.
func (h Header) Bytes() []byte {
	return []byte{
		YamahaID,
		(h.SubStatus&0x07)<<4 | h.Channel.Byte(),
		byte(h.Format),
		byte(h.ByteCount>>7) & 0x7F,
		byte(h.ByteCount) & 0x7F,
	}
}

func (h Header) DataSize() int { return HeaderSize }

func (h Header) String() string {
	return fmt.Sprintf("format = %s, channel = %d, length = %d bytes", h.Format, h.Channel.Value(), h.ByteCount)
}

// Message is a complete bulk dump: header, payload and checksum.
type Message struct {
	Header  Header
	Payload []byte
}

// NewVoiceMessage frames a single voice in the unpacked format.
func NewVoiceMessage(channel dx7.Channel, v dx7.Voice) Message {
	return Message{Header: NewHeader(channel, FormatVoice), Payload: v.Bytes()}
}

// NewCartridgeMessage frames a cartridge in the packed format.
func NewCartridgeMessage(channel dx7.Channel, c dx7.Cartridge) Message {
	return Message{Header: NewHeader(channel, FormatCartridge), Payload: c.Bytes()}
}

// Parse unframes a bulk dump and verifies its checksum. The payload is not
// parsed; use Voice or Cartridge for that.
func Parse(data []byte) (Message, error) {
	if len(data) < HeaderSize+3 {
		return Message{}, fmt.Errorf("message too short: %w", &dx7.LengthError{Actual: len(data), Expected: HeaderSize + 3})
	}
	if data[0] != Start {
		return Message{}, &dx7.DataError{Offset: 0, Err: fmt.Errorf("expected start byte 0x%02X, got 0x%02X", Start, data[0])}
	}
	if data[len(data)-1] != End {
		return Message{}, &dx7.DataError{Offset: len(data) - 1, Err: fmt.Errorf("expected end byte 0x%02X, got 0x%02X", End, data[len(data)-1])}
	}

	var body []byte
	if !midi.Message(data).GetSysEx(&body) {
		return Message{}, fmt.Errorf("not a system exclusive message: %w", dx7.ErrUnidentified)
	}
	if len(body) < HeaderSize+1 {
		return Message{}, &dx7.LengthError{Actual: len(body), Expected: HeaderSize + 1}
	}

	header, err := ParseHeader(body[:HeaderSize])
	if err != nil {
		return Message{}, fmt.Errorf("header: %w", err)
	}

	payload := body[HeaderSize : len(body)-1]
	if len(payload) != header.ByteCount {
		return Message{}, fmt.Errorf("%s payload: %w", header.Format, &dx7.LengthError{Actual: len(payload), Expected: header.ByteCount})
	}

	got := body[len(body)-1]
	if want := dx7.Checksum(payload); got != want {
		return Message{}, &dx7.ChecksumError{Actual: got, Expected: want}
	}

	return Message{Header: header, Payload: bytes.Clone(payload)}, nil
}

// Bytes returns the framed message including checksum, 0xF0 and 0xF7.
func (m Message) Bytes() []byte {
	body := make([]byte, 0, HeaderSize+len(m.Payload)+1)
	body = append(body, m.Header.Bytes()...)
	body = append(body, m.Payload...)
	body = append(body, dx7.Checksum(m.Payload))
	return midi.SysEx(body).Bytes()
}

// Voice parses the payload of a voice dump.
func (m Message) Voice() (dx7.Voice, error) {
	if m.Header.Format != FormatVoice {
		return dx7.Voice{}, fmt.Errorf("message is a %s dump, not a voice dump", m.Header.Format)
	}
	return dx7.ParseVoice(m.Payload)
}

// Cartridge parses the payload of a cartridge dump.
func (m Message) Cartridge() (dx7.Cartridge, error) {
	if m.Header.Format != FormatCartridge {
		return dx7.Cartridge{}, fmt.Errorf("message is a %s dump, not a cartridge dump", m.Header.Format)
	}
	return dx7.ParseCartridge(m.Payload)
}

// Identify tells whether data holds a voice or a cartridge. Framed messages
// are classified by their header; bare payloads by their length.
func Identify(data []byte) (Format, error) {
	if len(data) > HeaderSize && data[0] == Start {
		header, err := ParseHeader(data[1 : 1+HeaderSize])
		if err != nil {
			return 0, fmt.Errorf("%w: %w", dx7.ErrUnidentified, err)
		}
		return header.Format, nil
	}
	switch len(data) {
	case dx7.VoiceSize:
		return FormatVoice, nil
	case dx7.CartridgeSize:
		return FormatCartridge, nil
	}
	return 0, fmt.Errorf("%d bytes: %w", len(data), dx7.ErrUnidentified)
}

// ErrUnterminated is returned by Split for a message without an end byte.
var ErrUnterminated = errors.New("unterminated system exclusive message")

// Split returns every 0xF0...0xF7 message in data, in order. Bytes between
// messages are skipped.
func Split(data []byte) ([][]byte, error) {
	var msgs [][]byte
	for i := 0; i < len(data); i++ {
		if data[i] != Start {
			continue
		}
		n := bytes.IndexByte(data[i:], End)
		if n < 0 {
			return nil, fmt.Errorf("offset %d: %w", i, ErrUnterminated)
		}
		msgs = append(msgs, data[i:i+n+1])
		i += n
	}
	return msgs, nil
}
