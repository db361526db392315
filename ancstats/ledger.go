package ancstats

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/models"
)

// ErrDuplicateRecord is returned when creating a record whose identifier
// already exists in storage
var ErrDuplicateRecord = errors.New("record identifier already exists")

// RecordStore is the slice of the ANC record database the ledger needs.
// databases.AncRecordDatabase satisfies it.
type RecordStore interface {
	FindByID(ctx context.Context, id string) (*models.AncRecord, error)
	All(ctx context.Context) ([]models.AncRecord, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, rec *models.AncRecord) error
	InsertBatch(ctx context.Context, recs []models.AncRecord) error
	Replace(ctx context.Context, rec *models.AncRecord) error
	SetMonthGroup(ctx context.Context, id, monthGroup string) error
	Delete(ctx context.Context, id string) error
	DeleteByMonth(ctx context.Context, monthGroup string) (int64, error)
}

// SummaryStore is the slice of the summary database the ledger needs.
// databases.SummaryDatabase satisfies it.
type SummaryStore interface {
	All(ctx context.Context) ([]models.MonthlySummary, error)
	Exists(ctx context.Context, monthGroup string) (bool, error)
	Insert(ctx context.Context, summary *models.MonthlySummary) error
	Increment(ctx context.Context, monthGroup string, fields map[string]int) error
	Replace(ctx context.Context, summary *models.MonthlySummary) error
	Delete(ctx context.Context, monthGroup string) error
}

// TxnRunner runs a function inside one storage transaction.
// databases.ClientHelper satisfies it.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Ledger keeps the per-month summary counters consistent with the ANC
// records collection. Every mutation writes the record and its summary
// delta(s) in a single transaction: either both commit or neither does.
// Concurrent transactions touching the same month converge through
// commutative increments, so unrelated edits never serialize on a
// month-level lock.
type Ledger struct {
	records   RecordStore
	summaries SummaryStore
	txn       TxnRunner
}

// NewLedger threads the store handles into a ledger; there is no ambient
// database reference anywhere in this package
func NewLedger(records RecordStore, summaries SummaryStore, txn TxnRunner) *Ledger {
	return &Ledger{records: records, summaries: summaries, txn: txn}
}

// CreateRecord inserts a new record and adds its contribution to its
// month bucket. The bucket is resolved up front so an unclassifiable
// record fails validation before anything is written.
func (l *Ledger) CreateRecord(ctx context.Context, rec *models.AncRecord) error {
	bucket, err := BucketForRecord(rec)
	if err != nil {
		return err
	}
	rec.MonthGroup = bucket

	return l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := l.records.Exists(ctx, rec.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
		}
		if err := l.records.Insert(ctx, rec); err != nil {
			return err
		}
		return l.applyDelta(ctx, bucket, Contribution(rec))
	})
}

// UpdateRecord replaces a record and reconciles the summaries. When the
// edit moves the record between months the update splits into two bucket
// writes, subtracting the old contribution where it was and adding the
// new one where it lands; a same-month edit applies the one combined
// delta. Both shapes leave the ledger in the same state a rebuild would.
func (l *Ledger) UpdateRecord(ctx context.Context, updated *models.AncRecord) error {
	newBucket, err := BucketForRecord(updated)
	if err != nil {
		return err
	}
	updated.MonthGroup = newBucket

	return l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		old, err := l.records.FindByID(ctx, updated.ID)
		if err != nil {
			return err
		}
		oldBucket, err := BucketForRecord(old)
		if err != nil {
			// The stored record no longer classifies (legacy data); fall
			// back to the bucket it was filed under so its contribution
			// is removed from where it actually counts.
			oldBucket = old.MonthGroup
			if oldBucket == "" {
				return err
			}
		}

		if err := l.records.Replace(ctx, updated); err != nil {
			return err
		}

		if oldBucket == newBucket {
			return l.applyDelta(ctx, newBucket, ComputeDelta(old, updated))
		}
		if err := l.applyDelta(ctx, oldBucket, Contribution(old).Neg()); err != nil {
			return err
		}
		return l.applyDelta(ctx, newBucket, Contribution(updated))
	})
}

// DeleteRecord removes a record and subtracts its contribution from its
// month bucket
func (l *Ledger) DeleteRecord(ctx context.Context, id string) error {
	return l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		rec, err := l.records.FindByID(ctx, id)
		if err != nil {
			return err
		}
		bucket, err := BucketForRecord(rec)
		if err != nil {
			bucket = rec.MonthGroup
			if bucket == "" {
				return err
			}
		}
		if err := l.records.Delete(ctx, id); err != nil {
			return err
		}
		return l.applyDelta(ctx, bucket, Contribution(rec).Neg())
	})
}

// DeleteMonth removes every record filed under a month along with the
// month's summary doc, equivalent to each contained record contributing
// its negative delta. Returns the number of records removed.
func (l *Ledger) DeleteMonth(ctx context.Context, monthGroup string) (int64, error) {
	var deleted int64
	err := l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		deleted = 0
		n, err := l.records.DeleteByMonth(ctx, monthGroup)
		if err != nil {
			return err
		}
		deleted = n
		return l.summaries.Delete(ctx, monthGroup)
	})
	return deleted, err
}

// applyDelta folds a counter delta into a bucket's summary doc within the
// caller's transaction. A missing doc is created from the delta (clamped
// at zero) with its display metadata; an existing doc takes the non-zero
// fields as one atomic increment so concurrent writers commute. Applying
// the same delta twice deliberately double-counts: only transactions that
// did not commit may be retried.
func (l *Ledger) applyDelta(ctx context.Context, bucket string, delta Counters) error {
	if delta.IsZero() {
		return nil
	}

	exists, err := l.summaries.Exists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		clamped := delta.Clamped()
		if clamped != delta {
			zap.S().Warnw("negative counters clamped while creating summary, ledger rebuild warranted",
				"monthGroup", bucket,
				"delta", delta,
			)
		}
		summary, err := NewSummary(bucket, clamped)
		if err != nil {
			return err
		}
		return l.summaries.Insert(ctx, summary)
	}
	return l.summaries.Increment(ctx, bucket, delta.IncFields())
}
