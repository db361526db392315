package ancstats

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drshravan/phc-helper-api/models"
)

// Facility classifications used by the summary counters
const (
	FacilityGovt  = "govt"
	FacilityPvt   = "pvt"
	FacilityOther = "other"
)

// Counters is the fixed vector of per-month statistics. It doubles as a
// record's contribution (all fields 0 or 1) and as a signed delta between
// two contributions.
type Counters struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Aborted   int `json:"aborted"`
	Normal    int `json:"normal"`
	LSCS      int `json:"lscs"`
	Govt      int `json:"govt"`
	Pvt       int `json:"pvt"`
	HighRisk  int `json:"highRisk"`
}

// NormalizeFacility collapses the free-form facility type a worker enters
// into one of govt, pvt or other
func NormalizeFacility(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "gov"):
		return FacilityGovt
	case strings.Contains(s, "pvt"), strings.Contains(s, "priv"):
		return FacilityPvt
	default:
		return FacilityOther
	}
}

// Contribution computes the counter vector a single record contributes to
// its month bucket. Delivery mode and facility type only count for
// Delivered records; a record with no recorded outcome counts as pending
// so that pending + delivered + aborted always equals total.
func Contribution(rec *models.AncRecord) Counters {
	if rec == nil {
		return Counters{}
	}

	c := Counters{Total: 1}

	switch rec.DeliveryStatus {
	case models.StatusDelivered:
		c.Delivered = 1
		switch {
		case strings.EqualFold(rec.DeliveryMode, models.ModeNormal):
			c.Normal = 1
		case strings.EqualFold(rec.DeliveryMode, models.ModeLSCS):
			c.LSCS = 1
		}
		switch NormalizeFacility(rec.FacilityType) {
		case FacilityGovt:
			c.Govt = 1
		case FacilityPvt:
			c.Pvt = 1
		}
	case models.StatusAborted:
		c.Aborted = 1
	default:
		c.Pending = 1
	}

	if bool(rec.IsHighRisk) {
		c.HighRisk = 1
	}
	return c
}

// ComputeDelta returns the signed per-field change between two states of
// a record, treating nil as the zero vector. nil old means creation, nil
// new means deletion, both non-nil means an edit in place.
func ComputeDelta(old, new *models.AncRecord) Counters {
	return Contribution(new).Sub(Contribution(old))
}

// Add returns c + other field by field
func (c Counters) Add(other Counters) Counters {
	c.Total += other.Total
	c.Pending += other.Pending
	c.Delivered += other.Delivered
	c.Aborted += other.Aborted
	c.Normal += other.Normal
	c.LSCS += other.LSCS
	c.Govt += other.Govt
	c.Pvt += other.Pvt
	c.HighRisk += other.HighRisk
	return c
}

// Sub returns c - other field by field
func (c Counters) Sub(other Counters) Counters {
	c.Total -= other.Total
	c.Pending -= other.Pending
	c.Delivered -= other.Delivered
	c.Aborted -= other.Aborted
	c.Normal -= other.Normal
	c.LSCS -= other.LSCS
	c.Govt -= other.Govt
	c.Pvt -= other.Pvt
	c.HighRisk -= other.HighRisk
	return c
}

// Neg returns the negation of every field
func (c Counters) Neg() Counters {
	return Counters{}.Sub(c)
}

// IsZero reports whether every field is zero
func (c Counters) IsZero() bool {
	return c == Counters{}
}

// Clamped floors every field at zero. Used when creating a summary doc
// from a delta; a negative field there means the ledger had already
// drifted and a rebuild is warranted.
func (c Counters) Clamped() Counters {
	for _, f := range []*int{&c.Total, &c.Pending, &c.Delivered, &c.Aborted, &c.Normal, &c.LSCS, &c.Govt, &c.Pvt, &c.HighRisk} {
		if *f < 0 {
			*f = 0
		}
	}
	return c
}

// IncFields returns the non-zero fields keyed by their stored field name,
// ready to be applied as atomic increments. Zero fields are skipped to
// keep the write small.
func (c Counters) IncFields() map[string]int {
	fields := map[string]int{}
	for name, v := range map[string]int{
		"total":     c.Total,
		"pending":   c.Pending,
		"delivered": c.Delivered,
		"aborted":   c.Aborted,
		"normal":    c.Normal,
		"lscs":      c.LSCS,
		"govt":      c.Govt,
		"pvt":       c.Pvt,
		"highRisk":  c.HighRisk,
	} {
		if v != 0 {
			fields[name] = v
		}
	}
	return fields
}

// SummaryCounters extracts the counter vector stored on a summary doc
func SummaryCounters(s *models.MonthlySummary) Counters {
	if s == nil {
		return Counters{}
	}
	return Counters{
		Total:     s.Total,
		Pending:   s.Pending,
		Delivered: s.Delivered,
		Aborted:   s.Aborted,
		Normal:    s.Normal,
		LSCS:      s.LSCS,
		Govt:      s.Govt,
		Pvt:       s.Pvt,
		HighRisk:  s.HighRisk,
	}
}

// NewSummary builds a summary doc for a bucket from a counter vector,
// deriving the display title and chronological sort date from the key
func NewSummary(bucket string, c Counters) (*models.MonthlySummary, error) {
	title, err := BucketTitle(bucket)
	if err != nil {
		return nil, err
	}
	sortDate, err := BucketSortDate(bucket)
	if err != nil {
		return nil, err
	}
	return &models.MonthlySummary{
		ID:        bucket,
		Title:     title,
		SortDate:  primitive.NewDateTimeFromTime(sortDate),
		Total:     c.Total,
		Pending:   c.Pending,
		Delivered: c.Delivered,
		Aborted:   c.Aborted,
		Normal:    c.Normal,
		LSCS:      c.LSCS,
		Govt:      c.Govt,
		Pvt:       c.Pvt,
		HighRisk:  c.HighRisk,
		UpdatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}, nil
}
