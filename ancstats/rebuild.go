package ancstats

import (
	"context"

	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/models"
)

// Snapshot recomputes every bucket's counters from a full scan of the
// records collection without writing anything. This is the authoritative
// statement of what the ledger should contain; the drift audit compares
// it against the stored summaries. Records that no longer classify into
// any month are returned separately so they can be surfaced.
func (l *Ledger) Snapshot(ctx context.Context) (map[string]Counters, []string, error) {
	recs, err := l.records.All(ctx)
	if err != nil {
		return nil, nil, err
	}

	computed := map[string]Counters{}
	var unbucketed []string
	for i := range recs {
		rec := recs[i]
		bucket, err := BucketForRecord(&rec)
		if err != nil {
			unbucketed = append(unbucketed, rec.ID)
			continue
		}
		computed[bucket] = computed[bucket].Add(Contribution(&rec))
	}
	return computed, unbucketed, nil
}

// Rebuild recomputes the whole ledger from the records collection and
// writes it back, repairing three kinds of drift in one transaction:
// summary counters that disagree with the records, records whose stored
// monthGroup disagrees with the one freshly derived from their fields,
// and summary docs for months that no longer have any contributing
// record. It is an administrative repair operation, not a routine path.
func (l *Ledger) Rebuild(ctx context.Context) (map[string]models.MonthlySummary, error) {
	var result map[string]models.MonthlySummary

	err := l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		recs, err := l.records.All(ctx)
		if err != nil {
			return err
		}

		computed := map[string]Counters{}
		for i := range recs {
			rec := recs[i]
			bucket, err := BucketForRecord(&rec)
			if err != nil {
				zap.S().Warnw("record excluded from ledger rebuild, no usable date",
					"recordID", rec.ID,
					"error", err,
				)
				continue
			}
			if rec.MonthGroup != bucket {
				if err := l.records.SetMonthGroup(ctx, rec.ID, bucket); err != nil {
					return err
				}
			}
			computed[bucket] = computed[bucket].Add(Contribution(&rec))
		}

		existing, err := l.summaries.All(ctx)
		if err != nil {
			return err
		}
		for i := range existing {
			if _, ok := computed[existing[i].ID]; !ok {
				if err := l.summaries.Delete(ctx, existing[i].ID); err != nil {
					return err
				}
			}
		}

		result = make(map[string]models.MonthlySummary, len(computed))
		for bucket, counters := range computed {
			summary, err := NewSummary(bucket, counters)
			if err != nil {
				return err
			}
			if err := l.summaries.Replace(ctx, summary); err != nil {
				return err
			}
			result[bucket] = *summary
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
