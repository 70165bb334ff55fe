package types

import (
	"fmt"
	"strconv"
	"time"
)

// MillisecondTimestamp is the event time used across the kline pipeline.
// It marshals to an epoch-millisecond integer, which is what upstream
// exchange payloads carry.
type MillisecondTimestamp time.Time

func NewMillisecondTimestampFromEpoch(ms int64) MillisecondTimestamp {
	return MillisecondTimestamp(time.Unix(0, ms*int64(time.Millisecond)))
}

func (t MillisecondTimestamp) Time() time.Time {
	return time.Time(t)
}

func (t MillisecondTimestamp) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t MillisecondTimestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t MillisecondTimestamp) String() string {
	return time.Time(t).String()
}

func (t MillisecondTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *MillisecondTimestamp) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if data[0] == '"' {
		// fallback to RFC3339
		return (*time.Time)(t).UnmarshalJSON(data)
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("can not parse %s as millisecond timestamp: %w", string(data), err)
	}

	*t = NewMillisecondTimestampFromEpoch(ms)
	return nil
}
