package dx7

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestPackLFO(t *testing.T) {
	unpacked := []byte{37, 0, 5, 0, 0, byte(Sine)}
	packed := []byte{37, 0, 5, 0, 0x08}

	got, err := PackLFO(unpacked)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, packed) {
		t.Errorf("PackLFO() = %v, want %v", got, packed)
	}
	back, err := UnpackLFO(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, unpacked) {
		t.Errorf("UnpackLFO() = %v, want %v", back, unpacked)
	}

	synced, _ := PackLFO([]byte{35, 0, 0, 0, 1, byte(SampleAndHold)})
	if synced[4] != 0x0B {
		t.Errorf("sync/wave byte = 0x%02X, want 0x0B", synced[4])
	}
}

func TestParseLFO(t *testing.T) {
	lfo, err := ParseLFO([]byte{35, 10, 20, 30, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	want := LFO{Speed: level(35), Delay: level(10), PMD: level(20), AMD: level(30), Sync: true, Waveform: Square}
	if lfo != want {
		t.Errorf("ParseLFO() = %s, want %s", lfo, want)
	}
	if !bytes.Equal(lfo.Bytes(), []byte{35, 10, 20, 30, 1, 3}) {
		t.Errorf("Bytes() = %v", lfo.Bytes())
	}
}

func TestParseLFOUnknownWaveform(t *testing.T) {
	var logs strings.Builder
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	defer SetLogger(nil)

	lfo, err := ParseLFO([]byte{35, 0, 0, 0, 0, 6})
	if err != nil {
		t.Fatalf("ParseLFO(waveform 6) error = %v, want nil", err)
	}
	if lfo.Waveform != Triangle {
		t.Errorf("Waveform = %v, want %v", lfo.Waveform, Triangle)
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestParseLFOErrors(t *testing.T) {
	_, err := ParseLFO([]byte{35, 0, 0, 0, 2, 0})
	var de *DataError
	if !errors.As(err, &de) || de.Offset != 4 {
		t.Errorf("ParseLFO(sync 2) error = %v, want DataError at 4", err)
	}
	_, err = ParseLFO([]byte{35, 0, 100, 0, 0, 0})
	if !errors.As(err, &de) || de.Offset != 2 {
		t.Errorf("ParseLFO(pmd 100) error = %v, want DataError at 2", err)
	}
	if _, err := ParseLFO([]byte{35, 0, 0, 0, 0}); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("ParseLFO(5 bytes) error = %v, want ErrInvalidLength", err)
	}
}

func TestLFOWaveformText(t *testing.T) {
	for w := Triangle; w <= SampleAndHold; w++ {
		text, err := w.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got LFOWaveform
		if err := got.UnmarshalText(text); err != nil || got != w {
			t.Errorf("UnmarshalText(%s) = %v, %v, want %v", text, got, err, w)
		}
	}
}
