// Package dx7 encodes and decodes Yamaha DX7 voice data in the unpacked
// single voice format and the packed 32 voice cartridge format.
package dx7

// SystemExclusiveData is implemented by every entity that has a fixed size
// unpacked wire form.
type SystemExclusiveData interface {
	Bytes() []byte
	DataSize() int
}

var (
	_ SystemExclusiveData = Envelope{}
	_ SystemExclusiveData = KeyboardLevelScaling{}
	_ SystemExclusiveData = Operator{}
	_ SystemExclusiveData = LFO{}
	_ SystemExclusiveData = Voice{}
	_ SystemExclusiveData = Cartridge{}
)
