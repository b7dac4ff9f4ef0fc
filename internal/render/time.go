package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Ago formats a Unix millisecond timestamp relative to now ("3 hours ago").
func Ago(ms int64) string {
	return AgoFrom(ms, time.Now())
}

// AgoFrom formats ms relative to now.
func AgoFrom(ms int64, now time.Time) string {
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}
