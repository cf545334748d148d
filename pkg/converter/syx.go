package converter

import (
	"fmt"
	"os"

	"github.com/james-see/dx7syx/pkg/sysex"
	"github.com/pkg/errors"
)

// SysEx constants
const (
	SysExStart = sysex.Start
	SysExEnd   = sysex.End
)

// SyxConverter handles .syx file parsing and generation
type SyxConverter struct {
	device Device
}

// NewSyxConverter creates a new .syx converter
func NewSyxConverter(device Device) *SyxConverter {
	return &SyxConverter{device: device}
}

// ParseSyxFile reads a .syx file and returns a Document
func (s *SyxConverter) ParseSyxFile(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read syx file: %w", err)
	}
	return s.ParseSyx(data)
}

// ParseSyx parses .syx data and returns a Document
func (s *SyxConverter) ParseSyx(data []byte) (*Document, error) {
	if s.device == nil {
		return nil, errors.New("no device configured")
	}

	// Framed data is validated first; bare payloads go straight to the device
	if len(data) > 0 && data[0] == SysExStart {
		if err := s.ValidateSyx(data); err != nil {
			return nil, err
		}
	}

	return s.device.ParseSyx(data)
}

// GenerateSyx creates .syx data from a Document
func (s *SyxConverter) GenerateSyx(doc *Document) ([]byte, error) {
	if s.device == nil {
		return nil, errors.New("no device configured")
	}
	return s.device.GenerateSyx(doc)
}

// WriteSyxFile writes .syx data to a file
func (s *SyxConverter) WriteSyxFile(doc *Document, filename string) error {
	data, err := s.GenerateSyx(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ValidateSyx validates the framing of every message in .syx data
func (s *SyxConverter) ValidateSyx(data []byte) error {
	if len(data) < 2 {
		return errors.New("syx data too short")
	}

	if data[0] != SysExStart {
		return fmt.Errorf("invalid SysEx: expected start byte 0x%02X, got 0x%02X", SysExStart, data[0])
	}

	if data[len(data)-1] != SysExEnd {
		return fmt.Errorf("invalid SysEx: expected end byte 0x%02X, got 0x%02X", SysExEnd, data[len(data)-1])
	}

	msgs, err := sysex.Split(data)
	if err != nil {
		return errors.Wrap(err, "invalid SysEx")
	}

	// Check all data bytes are 7-bit (valid MIDI data)
	for _, msg := range msgs {
		for i := 1; i < len(msg)-1; i++ {
			if msg[i] > 127 {
				return fmt.Errorf("invalid SysEx: byte at position %d is > 127 (0x%02X)", i, msg[i])
			}
		}
	}

	return nil
}

// ExtractManufacturerID extracts the manufacturer ID from SysEx data
func ExtractManufacturerID(data []byte) ([]byte, error) {
	if len(data) < 3 {
		return nil, errors.New("syx data too short for manufacturer ID")
	}

	if data[0] != SysExStart {
		return nil, errors.New("invalid SysEx start")
	}

	// Check if extended manufacturer ID (starts with 0x00)
	if data[1] == 0x00 {
		if len(data) < 5 {
			return nil, errors.New("syx data too short for extended manufacturer ID")
		}
		return data[1:4], nil
	}

	// Single byte manufacturer ID
	return data[1:2], nil
}

// IsYamahaSyx checks if the SysEx data is from a Yamaha device
func IsYamahaSyx(data []byte) bool {
	id, err := ExtractManufacturerID(data)
	return err == nil && len(id) == 1 && id[0] == sysex.YamahaID
}
