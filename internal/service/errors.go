package service

import (
	"errors"
	"fmt"
	"time"
)

// Validation outcomes surfaced to the caller. All are recoverable: the caller
// corrects the input and retries, nothing here is fatal.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInterval     = errors.New("end time must be after start time")
	ErrDuplicateTaskForDay = errors.New("this task already has a block today")
)

// OverlapError rejects a proposed block and carries the conflicting interval
// so the caller can tell the user which slot is taken.
type OverlapError struct {
	Start time.Time
	End   time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlaps with an existing block (%s–%s), pick a different time slot",
		e.Start.Format("15:04"), e.End.Format("15:04"))
}
