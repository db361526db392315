package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MonthlySummary holds the structure for the ancSummaries collection in
// mongo. One document exists per month bucket; the _id is the bucket key
// (e.g. "jan-2026"). The counters are maintained incrementally by the
// statistics ledger and can always be rebuilt from the ancRecords
// collection, which remains the source of truth.
//
// Invariants: pending + delivered + aborted == total; normal + lscs <=
// delivered; govt + pvt <= delivered; no counter is ever negative.
type MonthlySummary struct {
	ID        string             `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`       // e.g. "Jan 2026", derived once at creation
	SortDate  primitive.DateTime `json:"sortDate" bson:"sortDate"` // first day of the month, for chronological ordering
	Total     int                `json:"total" bson:"total"`
	Pending   int                `json:"pending" bson:"pending"`
	Delivered int                `json:"delivered" bson:"delivered"`
	Aborted   int                `json:"aborted" bson:"aborted"`
	Normal    int                `json:"normal" bson:"normal"`
	LSCS      int                `json:"lscs" bson:"lscs"`
	Govt      int                `json:"govt" bson:"govt"`
	Pvt       int                `json:"pvt" bson:"pvt"`
	HighRisk  int                `json:"highRisk" bson:"highRisk"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
