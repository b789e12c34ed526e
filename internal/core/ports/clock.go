package ports

import "time"

// Clock supplies the current time to the fulfillment engine.
type Clock interface {
	Now() time.Time
}
