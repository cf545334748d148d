package dx7

import (
	"encoding/json"
	"math/rand/v2"
	"strconv"

	"gopkg.in/yaml.v3"
)

// bounds describes a bounded integer parameter. The wire byte of a value v
// is v + offset.
type bounds struct {
	name   string
	min    int
	max    int
	def    int
	offset int
}

type rangeSpec interface {
	bounds() bounds
}

func specOf[S rangeSpec]() bounds {
	var s S
	return s.bounds()
}

// ranged is the bounded integer shared by every parameter type. It stores the
// distance from the minimum, so the zero value is always the minimum and
// therefore valid.
type ranged[S rangeSpec] struct {
	n uint8
}

func newRanged[S rangeSpec](v int) (ranged[S], error) {
	b := specOf[S]()
	if v < b.min || v > b.max {
		return ranged[S]{}, &RangeError{Name: b.name, Value: v, Min: b.min, Max: b.max}
	}
	return ranged[S]{n: uint8(v - b.min)}, nil
}

func rangedFromByte[S rangeSpec](data byte) (ranged[S], error) {
	return newRanged[S](int(data) - specOf[S]().offset)
}

func defaultRanged[S rangeSpec]() ranged[S] {
	return mustRanged[S](specOf[S]().def)
}

// randomRanged picks a uniformly distributed valid value. A nil rng uses the
// package-level source.
func randomRanged[S rangeSpec](rng *rand.Rand) ranged[S] {
	b := specOf[S]()
	span := b.max - b.min + 1
	var n int
	if rng == nil {
		n = rand.IntN(span)
	} else {
		n = rng.IntN(span)
	}
	return ranged[S]{n: uint8(n)}
}

// mustRanged is for constants known to be in range.
func mustRanged[S rangeSpec](v int) ranged[S] {
	r, err := newRanged[S](v)
	if err != nil {
		panic(err)
	}
	return r
}

// Value returns the domain value.
func (r ranged[S]) Value() int {
	return specOf[S]().min + int(r.n)
}

// Byte returns the SysEx data byte for the value.
func (r ranged[S]) Byte() byte {
	return byte(r.Value() + specOf[S]().offset)
}

// Bounds returns the inclusive range and the default of the parameter.
func (r ranged[S]) Bounds() (min, max, def int) {
	b := specOf[S]()
	return b.min, b.max, b.def
}

func (r ranged[S]) String() string {
	return strconv.Itoa(r.Value())
}

func (r ranged[S]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

func (r *ranged[S]) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	nr, err := newRanged[S](v)
	if err != nil {
		return err
	}
	*r = nr
	return nil
}

func (r ranged[S]) MarshalYAML() (interface{}, error) {
	return r.Value(), nil
}

func (r *ranged[S]) UnmarshalYAML(node *yaml.Node) error {
	var v int
	if err := node.Decode(&v); err != nil {
		return err
	}
	nr, err := newRanged[S](v)
	if err != nil {
		return err
	}
	*r = nr
	return nil
}
