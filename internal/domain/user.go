package domain

import "github.com/google/uuid"

// User is a person the operator can assign schedule time to.
type User struct {
	ID      uuid.UUID
	Name    string
	Address string
	Phone   string
	Email   string
	Color   string
}

// TimeBlock is a half-open [StartTime, EndTime) slice of the day owned by one
// user. Blocks are never edited in place; an edit is a remove followed by an add.
type TimeBlock struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartTime string
	EndTime   string
}

// Interval returns the block's time span for overlap checks.
func (b TimeBlock) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}
