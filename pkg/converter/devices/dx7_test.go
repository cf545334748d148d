package devices

import (
	"bytes"
	"errors"
	"testing"

	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/james-see/dx7syx/pkg/sysex"
)

func channel(t *testing.T, n int) dx7.Channel {
	t.Helper()
	ch, err := dx7.NewChannel(n)
	if err != nil {
		t.Fatal(err)
	}
	return ch
}

func TestDX7Name(t *testing.T) {
	d := NewDX7(dx7.DefaultChannel())
	if d.Name() != "Yamaha DX7" {
		t.Errorf("Name() = %q, want %q", d.Name(), "Yamaha DX7")
	}
	if d.ID() != sysex.YamahaID {
		t.Errorf("ID() = 0x%02X, want 0x%02X", d.ID(), sysex.YamahaID)
	}
}

func TestDX7GenerateSyxVoice(t *testing.T) {
	d := NewDX7(channel(t, 5))
	doc := &converter.Document{Kind: converter.KindVoice, Voices: []dx7.Voice{dx7.InitVoice()}}

	data, err := d.GenerateSyx(doc)
	if err != nil {
		t.Fatalf("GenerateSyx() error = %v", err)
	}

	want := sysex.NewVoiceMessage(channel(t, 5), dx7.InitVoice()).Bytes()
	if !bytes.Equal(data, want) {
		t.Errorf("GenerateSyx() = % X, want % X", data[:8], want[:8])
	}
	if data[2] != 0x04 {
		t.Errorf("channel byte = 0x%02X, want 0x04 (device default)", data[2])
	}

	doc.Channel = 9
	data, err = d.GenerateSyx(doc)
	if err != nil {
		t.Fatal(err)
	}
	if data[2] != 0x08 {
		t.Errorf("channel byte = 0x%02X, want 0x08 (document channel)", data[2])
	}
}

func TestDX7ParseSyx(t *testing.T) {
	d := NewDX7(dx7.DefaultChannel())
	cart := dx7.NewCartridge()
	cart.Voices[4].Name = "SLOT FIVE"

	tests := []struct {
		name    string
		data    []byte
		kind    converter.Kind
		channel int
	}{
		{"voice message", sysex.NewVoiceMessage(channel(t, 2), dx7.InitVoice()).Bytes(), converter.KindVoice, 2},
		{"cartridge message", sysex.NewCartridgeMessage(channel(t, 16), cart).Bytes(), converter.KindCartridge, 16},
		{"bare voice", dx7.InitVoice().Bytes(), converter.KindVoice, 1},
		{"bare cartridge", cart.Bytes(), converter.KindCartridge, 1},
		{
			"after foreign message",
			append([]byte{0xF0, 0x41, 0x10, 0x42, 0x12, 0xF7}, sysex.NewVoiceMessage(channel(t, 3), dx7.InitVoice()).Bytes()...),
			converter.KindVoice, 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := d.ParseSyx(tt.data)
			if err != nil {
				t.Fatalf("ParseSyx() error = %v", err)
			}
			if doc.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", doc.Kind, tt.kind)
			}
			if doc.Channel != tt.channel {
				t.Errorf("Channel = %d, want %d", doc.Channel, tt.channel)
			}
			if tt.kind == converter.KindCartridge && doc.Voices[4].Name != "SLOT FIVE" {
				t.Errorf("slot 5 name = %q", doc.Voices[4].Name)
			}
		})
	}
}

func TestDX7ParseSyxErrors(t *testing.T) {
	d := NewDX7(dx7.DefaultChannel())

	bad := sysex.NewVoiceMessage(dx7.DefaultChannel(), dx7.InitVoice()).Bytes()
	bad[len(bad)-2] ^= 0x01

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"checksum", bad, dx7.ErrInvalidChecksum},
		{"foreign only", []byte{0xF0, 0x41, 0x10, 0x42, 0x12, 0xF7}, dx7.ErrUnidentified},
		{"parameter change only", []byte{0xF0, 0x43, 0x10, 0x01, 0x06, 0x05, 0xF7}, dx7.ErrUnidentified},
		{"odd payload", make([]byte, 100), dx7.ErrUnidentified},
		{"unterminated", []byte{0xF0, 0x43, 0x00}, sysex.ErrUnterminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.ParseSyx(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("ParseSyx() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDX7ParseSyxHeaderErrors(t *testing.T) {
	d := NewDX7(dx7.DefaultChannel())

	tests := []struct {
		name   string
		index  int
		value  byte
		offset int
	}{
		{"format", 3, 0x05, 2},
		{"byte count", 4, 0x10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := sysex.NewVoiceMessage(dx7.DefaultChannel(), dx7.InitVoice()).Bytes()
			data[tt.index] = tt.value

			_, err := d.ParseSyx(data)
			if !errors.Is(err, dx7.ErrInvalidData) {
				t.Fatalf("ParseSyx() error = %v, want %v", err, dx7.ErrInvalidData)
			}
			var de *dx7.DataError
			if !errors.As(err, &de) || de.Offset != tt.offset {
				t.Errorf("ParseSyx() error = %v, want offset %d", err, tt.offset)
			}
		})
	}
}

func TestDX7RoundTrip(t *testing.T) {
	d := NewDX7(dx7.DefaultChannel())
	want := sysex.NewCartridgeMessage(channel(t, 7), dx7.NewCartridge()).Bytes()

	doc, err := d.ParseSyx(want)
	if err != nil {
		t.Fatalf("ParseSyx() error = %v", err)
	}
	got, err := d.GenerateSyx(doc)
	if err != nil {
		t.Fatalf("GenerateSyx() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("GenerateSyx(ParseSyx(x)) != x")
	}
}
