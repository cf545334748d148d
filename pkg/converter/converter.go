package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format represents a file format
type Format string

const (
	FormatMIDI    Format = "midi"
	FormatSyx     Format = "syx"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi":
		return FormatMIDI
	case ".syx":
		return FormatSyx
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// Check for MIDI file signature "MThd"
	if string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// Check for SysEx (starts with F0) or a bare payload
	if data[0] == SysExStart || len(data) == dx7.VoiceSize || len(data) == dx7.CartridgeSize {
		return FormatSyx
	}

	text := bytes.TrimSpace(data)
	if len(text) > 0 && text[0] == '{' {
		return FormatJSON
	}
	if utf8.Valid(text) && bytes.Contains(text, []byte("kind:")) {
		return FormatYAML
	}

	return FormatUnknown
}

// Decode reads a dump in the given format into a document
func (c *Converter) Decode(data []byte, format Format) (*Document, error) {
	var doc *Document
	var err error

	switch format {
	case FormatSyx:
		doc, err = NewSyxConverter(c.device).ParseSyx(data)
	case FormatMIDI:
		var syx []byte
		syx, err = NewMIDIConverter().ParseMIDI(data)
		if err == nil {
			doc, err = NewSyxConverter(c.device).ParseSyx(syx)
		}
	case FormatJSON:
		doc = &Document{}
		err = json.Unmarshal(data, doc)
	case FormatYAML:
		doc = &Document{}
		err = yaml.Unmarshal(data, doc)
	default:
		return nil, errors.Errorf("cannot decode %s", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}

	if err := doc.Validate(); err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}
	return doc, nil
}

// Encode writes a document in the given format
func (c *Converter) Encode(doc *Document, format Format) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid document")
	}

	switch format {
	case FormatSyx:
		return c.device.GenerateSyx(doc)
	case FormatMIDI:
		syx, err := c.device.GenerateSyx(doc)
		if err != nil {
			return nil, err
		}
		return NewMIDIConverter().GenerateMIDI(syx)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		return data, errors.WithStack(err)
	default:
		return nil, errors.Errorf("cannot encode %s", format)
	}
}

// Convert decodes data in one format and encodes it in another
func (c *Converter) Convert(data []byte, from, to Format) ([]byte, error) {
	doc, err := c.Decode(data, from)
	if err != nil {
		return nil, err
	}
	return c.Encode(doc, to)
}

// ConvertFile converts a file from one format to another
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	inputFormat := DetectFormat(inputPath)
	if inputFormat == FormatUnknown {
		inputFormat = DetectFormatFromContent(data)
	}
	if inputFormat == FormatUnknown {
		return errors.New("cannot determine input format")
	}

	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	outputData, err := c.Convert(data, inputFormat, outputFormat)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// ExtractVoice returns a single voice dump of the voice in the 1-based slot
// of a cartridge dump
func (c *Converter) ExtractVoice(cartridgeSyx []byte, slot int) ([]byte, error) {
	doc, err := c.device.ParseSyx(cartridgeSyx)
	if err != nil {
		return nil, err
	}
	cart, err := doc.Cartridge()
	if err != nil {
		return nil, err
	}
	v, err := cart.Voice(slot)
	if err != nil {
		return nil, err
	}
	return c.device.GenerateSyx(&Document{Kind: KindVoice, Channel: doc.Channel, Voices: []dx7.Voice{v}})
}

// BuildCartridge assembles single voice dumps into a cartridge dump. Slots
// without a voice hold INIT VOICE.
func (c *Converter) BuildCartridge(voiceSyx ...[]byte) ([]byte, error) {
	if len(voiceSyx) > dx7.VoiceCount {
		return nil, errors.Errorf("%d voices do not fit in a cartridge", len(voiceSyx))
	}

	doc := &Document{Kind: KindCartridge}
	for i, data := range voiceSyx {
		vd, err := c.device.ParseSyx(data)
		if err != nil {
			return nil, errors.Wrapf(err, "voice %d", i+1)
		}
		v, err := vd.Voice()
		if err != nil {
			return nil, errors.Wrapf(err, "voice %d", i+1)
		}
		doc.Voices = append(doc.Voices, v)
	}
	return c.device.GenerateSyx(doc)
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	formats := []Format{FormatSyx, FormatMIDI, FormatJSON, FormatYAML}
	var conversions []string
	for _, from := range formats {
		for _, to := range formats {
			if from != to {
				conversions = append(conversions, fmt.Sprintf("%s -> %s", from, to))
			}
		}
	}
	return conversions
}
