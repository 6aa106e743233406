package rand

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Generator names accepted by New.
const (
	GeneratorMT19937    = "mt19937"
	GeneratorTausworthe = "tausworthe"
)

// Generator is a seeded uniform source usable both by the sampler (Float64)
// and by gonum distributions (Uint64).
type Generator interface {
	Float64() float64
	Uint64() uint64
}

// New returns the named generator seeded with seed.
func New(name string, seed uint32) (Generator, error) {
	switch name {
	case GeneratorMT19937, "":
		return NewMT19937(seed), nil
	case GeneratorTausworthe:
		return NewTausworthe(seed), nil
	default:
		return nil, errors.Errorf("unknown generator %q", name)
	}
}

// NewSeed returns a seed read from crypto/rand, for runs that do not pin one.
func NewSeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "read random seed")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
