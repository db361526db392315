package ancstats

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drshravan/phc-helper-api/models"
)

// RejectedRow describes one bulk import row that was excluded before the
// batch committed
type RejectedRow struct {
	Row    int    `json:"row"` // 1-based position in the submitted batch
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ImportReport is returned to the caller after a bulk import
type ImportReport struct {
	Inserted   []string      `json:"inserted"`
	Duplicates []string      `json:"duplicates"`
	Rejected   []RejectedRow `json:"rejected"`
}

// ImportBatch inserts a batch of candidate records, typically parsed from
// a pasted spreadsheet. Rows that cannot be classified into a month are
// rejected up front and reported; they never reach storage. Rows whose
// identifier already exists (in storage or earlier in the same batch) are
// skipped as duplicates and contribute nothing. The surviving rows commit
// in one transaction with one accumulated summary delta per distinct
// month, so the number of summary writes tracks the number of months
// touched rather than the number of rows.
func (l *Ledger) ImportBatch(ctx context.Context, rows []models.AncRecord) (*ImportReport, error) {
	report := &ImportReport{}

	type candidate struct {
		rec    models.AncRecord
		bucket string
	}
	var candidates []candidate
	seen := map[string]bool{}

	for i := range rows {
		row := rows[i]
		if row.ID == "" {
			report.Rejected = append(report.Rejected, RejectedRow{Row: i + 1, Reason: "missing record identifier"})
			continue
		}
		if seen[row.ID] {
			report.Duplicates = append(report.Duplicates, row.ID)
			continue
		}
		bucket, err := BucketForRecord(&row)
		if err != nil {
			report.Rejected = append(report.Rejected, RejectedRow{Row: i + 1, ID: row.ID, Reason: err.Error()})
			continue
		}
		seen[row.ID] = true

		now := primitive.NewDateTimeFromTime(time.Now())
		row.MonthGroup = bucket
		row.CreatedAt = now
		row.UpdatedAt = now
		candidates = append(candidates, candidate{rec: row, bucket: bucket})
	}

	if len(candidates) == 0 {
		return report, nil
	}

	var inserted []string
	var storageDups []string
	err := l.txn.WithTransaction(ctx, func(ctx context.Context) error {
		// reset per attempt: the driver may retry the whole callback
		inserted = inserted[:0]
		storageDups = storageDups[:0]
		toInsert := make([]models.AncRecord, 0, len(candidates))
		deltas := map[string]Counters{}

		for _, c := range candidates {
			exists, err := l.records.Exists(ctx, c.rec.ID)
			if err != nil {
				return err
			}
			if exists {
				storageDups = append(storageDups, c.rec.ID)
				continue
			}
			rec := c.rec
			toInsert = append(toInsert, rec)
			inserted = append(inserted, rec.ID)
			deltas[c.bucket] = deltas[c.bucket].Add(Contribution(&rec))
		}

		if len(toInsert) == 0 {
			return nil
		}
		if err := l.records.InsertBatch(ctx, toInsert); err != nil {
			return err
		}
		for bucket, delta := range deltas {
			if err := l.applyDelta(ctx, bucket, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Inserted = inserted
	report.Duplicates = append(report.Duplicates, storageDups...)
	return report, nil
}
