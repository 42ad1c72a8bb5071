package clock

import "time"

// All temporal guards run against this server clock; timestamps are
// stored and exchanged in UTC only, never a client-supplied value.
type Clock interface {
	Now() time.Time
}

type UTC struct{}

func (UTC) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a clock pinned to a single instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T.UTC()
}
