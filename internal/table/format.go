package table

import (
	"fmt"
	"time"
)

// formatDuration renders an elapsed time as h:mm:ss, with milliseconds
// appended only when the duration has a sub-second part. Nil renders as
// the empty string; methods not enabled for the category never reach here.
func formatDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}

	v := *d
	h := v / time.Hour
	v -= h * time.Hour
	m := v / time.Minute
	v -= m * time.Minute
	s := v / time.Second
	v -= s * time.Second
	ms := v / time.Millisecond

	if ms > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
