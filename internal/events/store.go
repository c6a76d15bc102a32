package events

import "time"

// RecordAppended is emitted after a record is appended to a store collection.
type RecordAppended struct {
	Collection string
	ID         int
	Duration   time.Duration
}
