package topic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withFixedNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := nowFn
	nowFn = func() time.Time { return ts }
	t.Cleanup(func() { nowFn = prev })
}

func TestValidate_MissingTopicID(t *testing.T) {
	err := Validate(Filter{TopicID: 0, StartTime: 0})
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestValidate_NegativeStartTime(t *testing.T) {
	err := Validate(Filter{TopicID: 1, StartTime: -1})
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestValidate_EndTimeEqualsStartTime(t *testing.T) {
	err := Validate(Filter{TopicID: 1, StartTime: 100, EndTime: NewEndTime(100)})
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestValidate_EndTimeBeforeStartTime(t *testing.T) {
	err := Validate(Filter{TopicID: 1, StartTime: 100, EndTime: NewEndTime(50)})
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestValidate_EndTimeAfterStartTimeOK(t *testing.T) {
	withFixedNow(t, time.Unix(0, 1000))
	err := Validate(Filter{TopicID: 1, StartTime: 100, EndTime: NewEndTime(200)})
	assert.NoError(t, err)
}

func TestValidate_StartTimeInFuture(t *testing.T) {
	withFixedNow(t, time.Unix(0, 1000))
	err := Validate(Filter{TopicID: 1, StartTime: 2000})
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestValidate_StartTimeAtNowOK(t *testing.T) {
	withFixedNow(t, time.Unix(0, 1000))
	err := Validate(Filter{TopicID: 1, StartTime: 1000})
	assert.NoError(t, err)
}

func TestValidate_UnboundedFilterOK(t *testing.T) {
	withFixedNow(t, time.Unix(0, 1000))
	err := Validate(Filter{TopicID: 1, StartTime: 0})
	assert.NoError(t, err)
}
