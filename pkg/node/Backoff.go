package node

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// callBackOff doubles from one unit and allows exactly retries retries.
func (policy Policy) callBackOff() backoff.BackOff {
	exponential := &backoff.ExponentialBackOff{
		InitialInterval:     policy.Unit,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         policy.Unit << 20,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}

	exponential.Reset()

	return backoff.WithMaxRetries(exponential, uint64(policy.Retries))
}

// pollBackOff doubles from one unit and stops before the cumulative delay
// would pass the ceiling.
type pollBackOff struct {
	unit    time.Duration
	ceiling time.Duration
	next    time.Duration
	total   time.Duration
}

func (policy Policy) pollBackOff() *pollBackOff {
	p := &pollBackOff{
		unit:    policy.Unit,
		ceiling: policy.Unit * time.Duration(policy.Ceiling),
	}

	p.Reset()

	return p
}

func (p *pollBackOff) Reset() {
	p.next = p.unit
	p.total = 0
}

func (p *pollBackOff) NextBackOff() time.Duration {
	if p.total+p.next > p.ceiling {
		return backoff.Stop
	}

	delay := p.next
	p.total += delay
	p.next *= 2

	return delay
}

func (policy Policy) timer() backoff.Timer {
	if policy.Timer == nil {
		return nil
	}

	return policy.Timer()
}
