package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts "now" so generation and the completion ledger can be tested
// against a controlled time.
type Clock interface {
	Now() time.Time
}

var Module = fx.Provide(NewSystemClock)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
