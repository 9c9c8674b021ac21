package helpers

import "time"

// Clock abstracts time.Now so services can be tested with fixed instants.
type Clock func() time.Time

// UTCNow is the production clock. Stored timestamps are always UTC.
func UTCNow() time.Time { return time.Now().UTC() }
