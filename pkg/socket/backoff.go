package socket

import (
	"math"
	"math/rand"
	"time"
)

// Backoff 指数退避加抖动。Jitter 为比例，0.2 表示在 ±20% 内随机
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter float64

	rand func() float64
}

// Duration attempt 从 1 开始
func (b Backoff) Duration(attempt int) time.Duration {
	minDelay, maxDelay := b.Min, b.Max
	if minDelay <= 0 {
		minDelay = 500 * time.Millisecond
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	factor := b.Factor
	if factor <= 1 {
		factor = 2
	}
	if attempt < 1 {
		attempt = 1
	}

	d := float64(minDelay) * math.Pow(factor, float64(attempt-1))
	if d > float64(maxDelay) {
		d = float64(maxDelay)
	}

	if b.Jitter > 0 {
		r := b.rand
		if r == nil {
			r = rand.Float64
		}
		delta := d * b.Jitter
		d = d - delta + r()*2*delta
	}

	if d > float64(maxDelay) {
		d = float64(maxDelay)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
