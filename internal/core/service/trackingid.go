package service

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// trackingIDPrefix starts every transaction tracking identifier.
const trackingIDPrefix = "TRX"

// NewTrackingID returns an identifier in the format TRX-<T>-<R>, where T is
// the current Unix time in milliseconds encoded as uppercase base 36 and R is
// six uppercase hex digits from three random bytes. Uniqueness is not
// guaranteed; callers rely on the store's constraint.
func NewTrackingID() string {
	return newTrackingID(time.Now())
}

func newTrackingID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// fallback: low bits of the nanosecond clock
		n := now.UnixNano()
		b = []byte{byte(n >> 16), byte(n >> 8), byte(n)}
	}
	return fmt.Sprintf("%s-%s-%X", trackingIDPrefix, ts, b)
}
