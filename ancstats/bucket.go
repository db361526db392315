// Package ancstats maintains the per-month aggregate statistics for ANC
// records. Every record write goes through the Ledger so that the record
// and its month summary counters commit in one transaction; the summaries
// are derived state and can always be rebuilt from the records collection.
package ancstats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drshravan/phc-helper-api/models"
)

// ErrNoEffectiveDate is returned when a record has no usable date to
// classify it into a month bucket. Callers must surface this as a
// validation error (single edit) or a rejected row (bulk import); a
// record is never silently assigned a fallback month.
var ErrNoEffectiveDate = errors.New("record has no usable date for month classification")

// dateLayouts are the accepted encodings for the date strings stored on
// ANC records, in order of preference.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseRecordDate parses one of the date strings stored on an ANC record
func ParseRecordDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// BucketKey derives the month bucket key for a date, e.g. "jan-2026"
func BucketKey(t time.Time) string {
	return strings.ToLower(t.Format("Jan-2006"))
}

// BucketForRecord resolves the month bucket a record belongs to. A
// record's statistical home follows its real-world outcome date when one
// is known, falling back to the planned delivery date while the outcome
// is still pending:
//
//  1. Aborted with an abortedDate: bucket from abortedDate
//  2. Delivered with a deliveredDate: bucket from deliveredDate
//  3. eddDate set: bucket from eddDate
//  4. otherwise ErrNoEffectiveDate
//
// A date that is set but unparseable is an error, never a fallback.
func BucketForRecord(rec *models.AncRecord) (string, error) {
	var field, value string
	switch {
	case rec.DeliveryStatus == models.StatusAborted && rec.AbortedDate != "":
		field, value = "abortedDate", rec.AbortedDate
	case rec.DeliveryStatus == models.StatusDelivered && rec.DeliveredDate != "":
		field, value = "deliveredDate", rec.DeliveredDate
	case rec.EddDate != "":
		field, value = "eddDate", rec.EddDate
	default:
		return "", ErrNoEffectiveDate
	}

	t, err := ParseRecordDate(value)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", field, err, ErrNoEffectiveDate)
	}
	return BucketKey(t), nil
}

// BucketSortDate returns the first day of a bucket's month in UTC, used
// to order summaries chronologically
func BucketSortDate(key string) (time.Time, error) {
	t, err := parseBucketKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// BucketTitle returns the human readable form of a bucket key, e.g.
// "Jan 2026"
func BucketTitle(key string) (string, error) {
	t, err := parseBucketKey(key)
	if err != nil {
		return "", err
	}
	return t.Format("Jan 2006"), nil
}

func parseBucketKey(key string) (time.Time, error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 3 {
		return time.Time{}, fmt.Errorf("bad bucket key %q", key)
	}
	normalized := strings.ToUpper(parts[0][:1]) + strings.ToLower(parts[0][1:]) + " " + parts[1]
	t, err := time.Parse("Jan 2006", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad bucket key %q", key)
	}
	return t, nil
}
