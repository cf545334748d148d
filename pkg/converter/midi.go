package converter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/james-see/dx7syx/pkg/sysex"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrNoSysEx is returned when a MIDI file carries no SysEx event
var ErrNoSysEx = errors.New("no SysEx events in MIDI file")

// MIDIConverter handles Standard MIDI Files that carry SysEx dumps
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
	// Ticks between consecutive SysEx events, so a receiving synth has
	// time to store each dump.
	spacing uint32
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 480,
		tempo:           120.0,
		spacing:         480,
	}
}

// ParseMIDIFile reads a MIDI file and extracts its SysEx messages
func (m *MIDIConverter) ParseMIDIFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return m.ParseMIDI(data)
}

// ParseMIDI returns every SysEx event of every track, framed and
// concatenated in file order
func (m *MIDIConverter) ParseMIDI(data []byte) ([]byte, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	var syx []byte
	for _, track := range s.Tracks {
		for _, ev := range track {
			var body []byte
			if midi.Message(ev.Message).GetSysEx(&body) {
				syx = append(syx, midi.SysEx(body).Bytes()...)
			}
		}
	}

	if len(syx) == 0 {
		return nil, ErrNoSysEx
	}
	return syx, nil
}

// GenerateMIDI creates a single track MIDI file holding each SysEx message
// of syx as its own event
func (m *MIDIConverter) GenerateMIDI(syx []byte) ([]byte, error) {
	msgs, err := sysex.Split(syx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid SysEx")
	}
	if len(msgs) == 0 {
		return nil, errors.New("no SysEx messages to write")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("DX7 SysEx"))
	track.Add(0, smf.MetaTempo(m.tempo))

	for i, msg := range msgs {
		var delta uint32
		if i > 0 {
			delta = m.spacing
		}
		track.Add(delta, msg)
	}

	// Add end of track
	track.Close(m.spacing)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	// Write to buffer
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteMIDIFile writes a MIDI file holding the SysEx messages of syx
func (m *MIDIConverter) WriteMIDIFile(syx []byte, filename string) error {
	data, err := m.GenerateMIDI(syx)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
