package chat

import "time"

// TimeConvertible covers store timestamp handles that expose a zero-argument
// conversion to a native time, the way Firestore-style SDK values do.
type TimeConvertible interface {
	ToTime() time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ResolveTimestamp normalizes any of the timestamp shapes a chat record can
// carry into a native time. The second return is false when the value is
// absent or does not parse; callers treat that as "unknown" rather than an
// error, so a pending server-assigned timestamp never breaks sorting.
func ResolveTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case TimeConvertible:
		t := v.ToTime()
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int64:
		return fromEpochMillis(v)
	case int:
		return fromEpochMillis(int64(v))
	case float64:
		return fromEpochMillis(int64(v))
	default:
		return time.Time{}, false
	}
}

func fromEpochMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
