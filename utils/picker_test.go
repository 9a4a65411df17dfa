package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomPickerStaysInRange(t *testing.T) {
	p := NewRandomPicker(42)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := p.Pick(5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
		seen[n] = true
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, 0, p.Pick(1))
	assert.Equal(t, 0, p.Pick(0))
}

func TestRandomPickerSeedIsReproducible(t *testing.T) {
	a := NewRandomPicker(7)
	b := NewRandomPicker(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Pick(10), b.Pick(10))
	}
}

func TestRandomPickerConcurrentUse(t *testing.T) {
	p := NewRandomPicker(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Pick(3)
			}
		}()
	}
	wg.Wait()
}

func TestFixedPicker(t *testing.T) {
	assert.Equal(t, 2, FixedPicker(2).Pick(5))
	assert.Equal(t, 4, FixedPicker(9).Pick(5))
	assert.Equal(t, 0, FixedPicker(-1).Pick(5))
	assert.Equal(t, 0, FixedPicker(3).Pick(0))
}

func TestPickOne(t *testing.T) {
	assert.Equal(t, "b", PickOne(FixedPicker(1), []string{"a", "b", "c"}))
	assert.Equal(t, "", PickOne(FixedPicker(1), nil))
}
