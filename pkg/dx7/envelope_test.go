package dx7

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	data := []byte{49, 99, 28, 68, 98, 98, 91, 0}
	e, err := ParseEnvelope(data)
	if err != nil {
		t.Fatalf("ParseEnvelope() error = %v", err)
	}
	if e.Rates[2].Value() != 28 || e.Levels[2].Value() != 91 {
		t.Errorf("ParseEnvelope() = %s, want R3=28 L3=91", e)
	}
	if got := e.Bytes(); !bytes.Equal(got, data) {
		t.Errorf("Bytes() = %v, want %v", got, data)
	}
}

func TestParseEnvelopeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		length bool
		offset int
	}{
		{"short", []byte{1, 2, 3}, true, 0},
		{"bad rate", []byte{99, 99, 100, 99, 0, 0, 0, 0}, false, 2},
		{"bad level", []byte{99, 99, 99, 99, 0, 0, 0, 127}, false, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope(tt.data)
			if tt.length {
				if !errors.Is(err, ErrInvalidLength) {
					t.Errorf("ParseEnvelope() error = %v, want ErrInvalidLength", err)
				}
				return
			}
			var de *DataError
			if !errors.As(err, &de) {
				t.Fatalf("ParseEnvelope() error = %v, want *DataError", err)
			}
			if de.Offset != tt.offset {
				t.Errorf("DataError.Offset = %d, want %d", de.Offset, tt.offset)
			}
			if !errors.Is(err, ErrInvalidData) {
				t.Error("error does not match ErrInvalidData")
			}
		})
	}
}

func TestADSR(t *testing.T) {
	e := ADSR(rate(80), rate(40), level(70), rate(30))
	want := []byte{80, 99, 40, 30, 99, 99, 70, 0}
	if got := e.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("ADSR().Bytes() = %v, want %v", got, want)
	}
}

func TestNewEnvelope(t *testing.T) {
	if _, err := NewEnvelope([4]int{99, 99, 99, 99}, [4]int{99, 99, 99, 0}); err != nil {
		t.Errorf("NewEnvelope() error = %v", err)
	}
	_, err := NewEnvelope([4]int{99, 99, 99, 99}, [4]int{99, 100, 99, 0})
	var re *RangeError
	if !errors.As(err, &re) {
		t.Errorf("NewEnvelope() error = %v, want *RangeError", err)
	}
	if e, _ := NewEnvelope([4]int{99, 99, 99, 99}, [4]int{99, 99, 99, 0}); e != DefaultEnvelope() {
		t.Errorf("NewEnvelope() = %s, want %s", e, DefaultEnvelope())
	}
}
