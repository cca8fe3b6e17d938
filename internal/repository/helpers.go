package repository

import (
	"database/sql"
	"time"
)

// Layouts used for stored timestamps and calendar dates.
const (
	timestampLayout = time.RFC3339
	dateLayout      = "2006-01-02"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString returns SQL NULL for a nil time.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableIntToValue returns SQL NULL for a nil int.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableInt converts a scanned sql.NullInt64 into *int.
func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// formatTimestamp keeps the wall-clock offset so a stored session still
// knows which calendar day it belongs to.
func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}
