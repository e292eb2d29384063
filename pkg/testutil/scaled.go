package testutil

import (
	"os"
	"strconv"
	"time"

	"src.nfsh.sh/pkg/env"
)

// Scaled multiplies d by $NFSH_TEST_TIME_SCALE, so that the timeouts of the
// pty and pipeline tests can be stretched on slow machines. A missing,
// malformed or non-positive scale counts as 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * timeScale())
}

func timeScale() float64 {
	scale, err := strconv.ParseFloat(os.Getenv(env.NFSH_TEST_TIME_SCALE), 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
