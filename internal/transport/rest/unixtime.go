package rest

import "time"

// Timestamps cross the wire as integer counts since the Unix epoch, either
// whole seconds or thousandths. Encoding floors to the whole second first,
// so a millisecond value is always a multiple of 1000.

func epochSeconds(t time.Time) int64 {
	return t.Unix()
}

func epochMillis(t time.Time) int64 {
	return t.Unix() * 1000
}

func fromEpochSeconds(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func fromEpochMillis(v int64) time.Time {
	return time.Unix(v/1000, 0).UTC()
}
