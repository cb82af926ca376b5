package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

func TestNewTrackingID_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := NewTrackingID()
		require.Regexp(t, domain.TrackingIDPattern, id)
	}
}

func TestNewTrackingID_EncodesMilliseconds(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := newTrackingID(now)

	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "TRX", parts[0])

	ms, err := strconv.ParseInt(parts[1], 36, 64)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), ms)
	assert.Len(t, parts[2], 6)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNewTrackingID_SortsByTime(t *testing.T) {
	earlier := newTrackingID(time.UnixMilli(1_700_000_000_000))
	later := newTrackingID(time.UnixMilli(1_700_000_000_001))

	// Equal-length base-36 prefixes compare chronologically.
	assert.Less(t, strings.Split(earlier, "-")[1], strings.Split(later, "-")[1])
}
