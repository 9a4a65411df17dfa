package utils

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Picker chooses one index out of n. Implementations must return a value
// in [0, n) for n > 0.
type Picker interface {
	Pick(n int) int
}

type randomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker returns a uniform Picker safe for concurrent use.
// A zero seed draws one from the clock.
func NewRandomPicker(seed uint64) Picker {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomPicker{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (p *randomPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// FixedPicker always picks the same index, clamped to the last option.
type FixedPicker int

func (f FixedPicker) Pick(n int) int {
	if n <= 0 || int(f) < 0 {
		return 0
	}
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

// PickOne returns a picked element of options, or "" when there are none.
func PickOne(p Picker, options []string) string {
	if len(options) == 0 {
		return ""
	}
	i := p.Pick(len(options))
	if i < 0 || i >= len(options) {
		i = 0
	}
	return options[i]
}
