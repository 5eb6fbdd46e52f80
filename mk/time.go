package mk

import "time"

// realNow is the default Context.Now: the wall-clock time truncated
// to the same resolution modtime comparisons use.
func realNow() Timestamp { return Timestamp(time.Now().Unix()) }
