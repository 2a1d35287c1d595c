package topic

import "time"

// nowFn is overridable in tests so they can substitute a fixed clock
// rather than sleeping real wall-clock time.
var nowFn = time.Now

// Validate checks a Filter before any I/O is attempted. The first violation
// wins; validation errors are reported before the subscription is
// established, as a single clear INVALID_ARGUMENT message.
func Validate(f Filter) error {
	if f.TopicID == 0 {
		return InvalidArgument("topicId must not be null")
	}
	if f.StartTime < 0 {
		return InvalidArgument("startTime must not be negative")
	}
	if f.EndTime.Valid && f.EndTime.Int64 <= f.StartTime {
		return InvalidArgument("End time must be after start time")
	}
	if f.StartTime > nowFn().UnixNano() {
		return InvalidArgument("Start time must be before the current time")
	}
	return nil
}
