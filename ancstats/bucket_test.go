package ancstats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/drshravan/phc-helper-api/models"
)

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "jan-2026", BucketKey(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "dec-2025", BucketKey(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestParseRecordDate(t *testing.T) {
	got, err := ParseRecordDate("2026-03-14")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseRecordDate("2026-03-14T10:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.March, got.Month())

	_, err = ParseRecordDate("14/03/2026")
	assert.Error(t, err)
}

func TestBucketForRecordPriority(t *testing.T) {
	rec := &models.AncRecord{
		ID:             "M100",
		EddDate:        "2026-01-10",
		DeliveredDate:  "2026-02-05",
		AbortedDate:    "2026-03-20",
		DeliveryStatus: models.StatusAborted,
	}

	// aborted outcome wins over everything
	bucket, err := BucketForRecord(rec)
	assert.NoError(t, err)
	assert.Equal(t, "mar-2026", bucket)

	// delivered outcome beats the planned EDD
	rec.DeliveryStatus = models.StatusDelivered
	bucket, err = BucketForRecord(rec)
	assert.NoError(t, err)
	assert.Equal(t, "feb-2026", bucket)

	// pending falls back to the EDD
	rec.DeliveryStatus = models.StatusPending
	bucket, err = BucketForRecord(rec)
	assert.NoError(t, err)
	assert.Equal(t, "jan-2026", bucket)
}

func TestBucketForRecordStatusWithoutOutcomeDate(t *testing.T) {
	// delivered but no deliveredDate recorded yet: EDD still classifies it
	rec := &models.AncRecord{
		ID:             "M101",
		EddDate:        "2026-04-01",
		DeliveryStatus: models.StatusDelivered,
	}
	bucket, err := BucketForRecord(rec)
	assert.NoError(t, err)
	assert.Equal(t, "apr-2026", bucket)
}

func TestBucketForRecordNoUsableDate(t *testing.T) {
	rec := &models.AncRecord{ID: "M102", DeliveryStatus: models.StatusPending}
	_, err := BucketForRecord(rec)
	assert.ErrorIs(t, err, ErrNoEffectiveDate)
}

func TestBucketForRecordUnparseableDateIsErrorNotFallback(t *testing.T) {
	// eddDate is fine but the delivered date is garbage: the record must
	// be rejected, not filed under the EDD month
	rec := &models.AncRecord{
		ID:             "M103",
		EddDate:        "2026-01-10",
		DeliveredDate:  "not-a-date",
		DeliveryStatus: models.StatusDelivered,
	}
	_, err := BucketForRecord(rec)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEffectiveDate))
	assert.Contains(t, err.Error(), "deliveredDate")
}

func TestBucketTitleAndSortDate(t *testing.T) {
	title, err := BucketTitle("jan-2026")
	assert.NoError(t, err)
	assert.Equal(t, "Jan 2026", title)

	sortDate, err := BucketSortDate("jan-2026")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), sortDate)

	_, err = BucketTitle("garbage")
	assert.Error(t, err)
	_, err = BucketSortDate("x-2026")
	assert.Error(t, err)
}
