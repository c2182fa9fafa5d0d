package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitSystemClockNow(t *testing.T) {
	now := systemClock{}.Now()

	assert.InDelta(
		t,
		time.Now().UTC().UnixMilli(),
		now.UnixMilli(),
		float64(50*time.Millisecond.Milliseconds()),
		"should return current time",
	)
	assert.Equal(t, time.UTC, now.Location(), "should return UTC time")
}
