package service

import (
	"math/rand/v2"
	"time"
)

// DateLayout is how content dates are stamped.
const DateLayout = "2006-01-02"

// entropy supplies the randomness and time content services stamp onto new
// records. Tests replace it for deterministic output.
type entropy struct {
	now   func() time.Time
	float func() float64
	intn  func(n int) int
}

func defaultEntropy() entropy {
	return entropy{
		now:   time.Now,
		float: rand.Float64,
		intn:  rand.IntN,
	}
}

func (e entropy) today() string {
	return e.now().Format(DateLayout)
}
