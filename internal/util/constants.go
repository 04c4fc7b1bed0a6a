package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// DayKey 按 UTC 日期分桶
func DayKey(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// ParseDay 校验 YYYY-MM-DD
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return t, nil
}
