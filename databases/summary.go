package databases

// go generate: mockery --name SummaryDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const summaryName = "ancSummaries"

// SummaryDatabase contains the methods to use with the monthly summary
// database. Increment applies the given counter fields with a single $inc
// so that concurrent transactions touching the same month commute instead
// of conflicting; it must only be called for documents that exist.
type SummaryDatabase interface {
	Get(ctx context.Context, monthGroup string) (*models.MonthlySummary, error)
	All(ctx context.Context) ([]models.MonthlySummary, error)
	Exists(ctx context.Context, monthGroup string) (bool, error)
	Insert(ctx context.Context, summary *models.MonthlySummary) error
	Increment(ctx context.Context, monthGroup string, fields map[string]int) error
	Replace(ctx context.Context, summary *models.MonthlySummary) error
	Delete(ctx context.Context, monthGroup string) error
}

type summaryDatabase struct {
	db DatabaseHelper
}

// NewSummaryDatabase initializes a new instance of the summary database
// with the provided db connection
func NewSummaryDatabase(db DatabaseHelper) SummaryDatabase {
	return &summaryDatabase{
		db: db,
	}
}

func (s *summaryDatabase) Get(ctx context.Context, monthGroup string) (*models.MonthlySummary, error) {
	summary := &models.MonthlySummary{}
	err := s.db.Collection(summaryName).FindOne(ctx, bson.M{"_id": monthGroup}).Decode(&summary)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *summaryDatabase) All(ctx context.Context) ([]models.MonthlySummary, error) {
	var summaries []models.MonthlySummary
	sortOpt := options.Find().SetSort(bson.D{{Key: "sortDate", Value: 1}})
	cur, err := s.db.Collection(summaryName).Find(ctx, bson.D{}, sortOpt)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&summaries)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *summaryDatabase) Exists(ctx context.Context, monthGroup string) (bool, error) {
	count, err := s.db.Collection(summaryName).CountDocuments(ctx, bson.M{"_id": monthGroup})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *summaryDatabase) Insert(ctx context.Context, summary *models.MonthlySummary) error {
	_, err := s.db.Collection(summaryName).InsertOne(ctx, summary)
	return err
}

func (s *summaryDatabase) Increment(ctx context.Context, monthGroup string, fields map[string]int) error {
	inc := bson.M{}
	for field, by := range fields {
		inc[field] = by
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	}
	return s.db.Collection(summaryName).UpdateOne(ctx, bson.M{"_id": monthGroup}, update)
}

func (s *summaryDatabase) Replace(ctx context.Context, summary *models.MonthlySummary) error {
	upsert := options.Replace().SetUpsert(true)
	return s.db.Collection(summaryName).ReplaceOne(ctx, bson.M{"_id": summary.ID}, summary, upsert)
}

func (s *summaryDatabase) Delete(ctx context.Context, monthGroup string) error {
	return s.db.Collection(summaryName).DeleteOne(ctx, bson.M{"_id": monthGroup})
}
