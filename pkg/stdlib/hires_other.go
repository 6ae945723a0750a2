//go:build !windows

package stdlib

import "time"

var hiresEpoch = time.Now()

// hiresSeconds returns high-resolution monotonic seconds since process start.
func hiresSeconds() float64 {
	return time.Since(hiresEpoch).Seconds()
}
