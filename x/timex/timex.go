package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// SinceMs returns the elapsed time since a NowMs timestamp, in milliseconds.
func SinceMs(startMs int64) int64 { return NowMs() - startMs }
