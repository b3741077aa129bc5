package controllers

import "time"

// SetClock overrides the handlers' clock for tests.
func SetClock(f func() time.Time) {
	timeNow = f
}
