package myrandom

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -source=random.go -package myrandom -destination randomizer_mock.go Randomizer
type Randomizer interface {
	// Intn returns a number in [0,n)
	Intn(n int) int
	// Int63n returns a number in [0,n)
	Int63n(n int64) int64
}

type lockedRandomizer struct {
	sync.Mutex
	rnd *rand.Rand
}

// New returns a randomizer that is safe for concurrent use. A zero seed seeds from the clock.
func New(seed int64) Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandomizer{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (r *lockedRandomizer) Intn(n int) int {
	r.Lock()
	defer r.Unlock()

	return r.rnd.Intn(n)
}

func (r *lockedRandomizer) Int63n(n int64) int64 {
	r.Lock()
	defer r.Unlock()

	return r.rnd.Int63n(n)
}
