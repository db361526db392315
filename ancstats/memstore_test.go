package ancstats

import (
	"context"
	"errors"
	"fmt"

	"github.com/drshravan/phc-helper-api/models"
)

var errNotFound = errors.New("record not found")

// memStore is an in-memory stand-in for the mongo-backed stores, exposed
// to the ledger through the memRecords and memSummaries views. Its
// WithTransaction emulates all-or-nothing commits by snapshotting both
// maps and restoring them when the callback fails, which is what the
// ledger's correctness arguments lean on.
type memStore struct {
	records   map[string]models.AncRecord
	summaries map[string]models.MonthlySummary

	incrementCalls int
	failIncrement  bool
	failInsert     bool
}

type memRecords struct{ *memStore }
type memSummaries struct{ *memStore }

func newMemStore() *memStore {
	return &memStore{
		records:   map[string]models.AncRecord{},
		summaries: map[string]models.MonthlySummary{},
	}
}

func newMemLedger() (*Ledger, *memStore) {
	m := newMemStore()
	return NewLedger(memRecords{m}, memSummaries{m}, m), m
}

func (m *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	recSnap := make(map[string]models.AncRecord, len(m.records))
	for k, v := range m.records {
		recSnap[k] = v
	}
	sumSnap := make(map[string]models.MonthlySummary, len(m.summaries))
	for k, v := range m.summaries {
		sumSnap[k] = v
	}
	if err := fn(ctx); err != nil {
		m.records = recSnap
		m.summaries = sumSnap
		return err
	}
	return nil
}

// RecordStore view

func (m memRecords) FindByID(ctx context.Context, id string) (*models.AncRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotFound, id)
	}
	return &rec, nil
}

func (m memRecords) All(ctx context.Context) ([]models.AncRecord, error) {
	out := make([]models.AncRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m memRecords) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

func (m memRecords) Insert(ctx context.Context, rec *models.AncRecord) error {
	if m.failInsert {
		return errors.New("mocked insert failure")
	}
	m.records[rec.ID] = *rec
	return nil
}

func (m memRecords) InsertBatch(ctx context.Context, recs []models.AncRecord) error {
	for _, rec := range recs {
		m.records[rec.ID] = rec
	}
	return nil
}

func (m memRecords) Replace(ctx context.Context, rec *models.AncRecord) error {
	m.records[rec.ID] = *rec
	return nil
}

func (m memRecords) SetMonthGroup(ctx context.Context, id, monthGroup string) error {
	rec, ok := m.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", errNotFound, id)
	}
	rec.MonthGroup = monthGroup
	m.records[id] = rec
	return nil
}

func (m memRecords) Delete(ctx context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m memRecords) DeleteByMonth(ctx context.Context, monthGroup string) (int64, error) {
	var n int64
	for id, rec := range m.records {
		if rec.MonthGroup == monthGroup {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

// SummaryStore view

func (m memSummaries) All(ctx context.Context) ([]models.MonthlySummary, error) {
	out := make([]models.MonthlySummary, 0, len(m.summaries))
	for _, s := range m.summaries {
		out = append(out, s)
	}
	return out, nil
}

func (m memSummaries) Exists(ctx context.Context, monthGroup string) (bool, error) {
	_, ok := m.summaries[monthGroup]
	return ok, nil
}

func (m memSummaries) Insert(ctx context.Context, summary *models.MonthlySummary) error {
	m.summaries[summary.ID] = *summary
	return nil
}

func (m memSummaries) Increment(ctx context.Context, monthGroup string, fields map[string]int) error {
	if m.failIncrement {
		return errors.New("mocked increment failure")
	}
	m.incrementCalls++
	s, ok := m.summaries[monthGroup]
	if !ok {
		return fmt.Errorf("summary %s does not exist", monthGroup)
	}
	for field, by := range fields {
		switch field {
		case "total":
			s.Total += by
		case "pending":
			s.Pending += by
		case "delivered":
			s.Delivered += by
		case "aborted":
			s.Aborted += by
		case "normal":
			s.Normal += by
		case "lscs":
			s.LSCS += by
		case "govt":
			s.Govt += by
		case "pvt":
			s.Pvt += by
		case "highRisk":
			s.HighRisk += by
		default:
			return fmt.Errorf("unknown counter field %q", field)
		}
	}
	m.summaries[monthGroup] = s
	return nil
}

func (m memSummaries) Replace(ctx context.Context, summary *models.MonthlySummary) error {
	m.summaries[summary.ID] = *summary
	return nil
}

func (m memSummaries) Delete(ctx context.Context, monthGroup string) error {
	delete(m.summaries, monthGroup)
	return nil
}
