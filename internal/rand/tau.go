package rand

// Tausworthe is the three-component combined Tausworthe generator (taus88).
// It is faster than MT19937 but has no NumPy counterpart.
type Tausworthe struct {
	s [3]int64
}

// NewTausworthe creates a generator from a seed.
func NewTausworthe(seed uint32) *Tausworthe {
	t := &Tausworthe{}
	t.Seed(seed)
	return t
}

// Seed reinitializes the state from seed using an LCG and warms it up.
func (t *Tausworthe) Seed(seed uint32) {
	s := int64(seed)
	if s == 0 {
		s = 1
	}
	t.s[0] = s
	t.s[1] = (t.s[0]*6364136223846793005 + 1442695040888963407) & 0xFFFFFFFF
	t.s[2] = (t.s[1]*6364136223846793005 + 1442695040888963407) & 0xFFFFFFFF
	// taus88 needs s1 > 1, s2 > 7, s3 > 15
	if t.s[0] < 2 {
		t.s[0] += 2
	}
	if t.s[1] < 8 {
		t.s[1] += 8
	}
	if t.s[2] < 16 {
		t.s[2] += 16
	}
	for i := 0; i < 10; i++ {
		t.Uint32()
	}
}

// Uint32 advances the three components and returns their xor.
func (t *Tausworthe) Uint32() uint32 {
	s := &t.s
	s[0] = (((s[0] & 4294967294) << 12) & 0xFFFFFFFF) ^
		((((s[0] << 13) & 0xFFFFFFFF) ^ s[0]) >> 19)
	s[1] = (((s[1] & 4294967288) << 4) & 0xFFFFFFFF) ^
		((((s[1] << 2) & 0xFFFFFFFF) ^ s[1]) >> 25)
	s[2] = (((s[2] & 4294967280) << 17) & 0xFFFFFFFF) ^
		((((s[2] << 3) & 0xFFFFFFFF) ^ s[2]) >> 11)
	return uint32(s[0] ^ s[1] ^ s[2])
}

// Uint64 combines two consecutive words, high word first.
func (t *Tausworthe) Uint64() uint64 {
	hi := uint64(t.Uint32())
	return hi<<32 | uint64(t.Uint32())
}

// Float64 returns a float64 in [0, 1) built from the top 53 bits of Uint64.
func (t *Tausworthe) Float64() float64 {
	return float64(t.Uint64()>>11) * (1.0 / 9007199254740992.0)
}
