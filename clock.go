package main

import "time"

// Clock abstracts time so quote selection and timestamps are deterministic in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
