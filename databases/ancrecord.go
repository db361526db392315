package databases

// go generate: mockery --name AncRecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const ancRecordName = "ancRecords"

// AncRecordDatabase contains the methods to use with the ANC record database.
// The write methods are safe to call with a transaction context from
// ClientHelper.WithTransaction; the statistics ledger relies on that to
// keep record writes and summary deltas atomic.
type AncRecordDatabase interface {
	FindByID(ctx context.Context, id string) (*models.AncRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AncRecord, error)
	FindPage(ctx context.Context, filter interface{}, limit, page int) ([]models.AncRecord, error)
	All(ctx context.Context) ([]models.AncRecord, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, rec *models.AncRecord) error
	InsertBatch(ctx context.Context, recs []models.AncRecord) error
	Replace(ctx context.Context, rec *models.AncRecord) error
	SetMonthGroup(ctx context.Context, id, monthGroup string) error
	Delete(ctx context.Context, id string) error
	DeleteByMonth(ctx context.Context, monthGroup string) (int64, error)
}

type ancRecordDatabase struct {
	db DatabaseHelper
}

// NewAncRecordDatabase initializes a new instance of the ANC record database
// with the provided db connection
func NewAncRecordDatabase(db DatabaseHelper) AncRecordDatabase {
	return &ancRecordDatabase{
		db: db,
	}
}

func (a *ancRecordDatabase) FindByID(ctx context.Context, id string) (*models.AncRecord, error) {
	rec := &models.AncRecord{}
	err := a.db.Collection(ancRecordName).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a *ancRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AncRecord, error) {
	var recs []models.AncRecord
	cur, err := a.db.Collection(ancRecordName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&recs)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (a *ancRecordDatabase) FindPage(ctx context.Context, filter interface{}, limit, page int) ([]models.AncRecord, error) {
	return a.Find(ctx, filter, findPageOpts(limit, page))
}

func (a *ancRecordDatabase) All(ctx context.Context) ([]models.AncRecord, error) {
	return a.Find(ctx, bson.D{})
}

func (a *ancRecordDatabase) Exists(ctx context.Context, id string) (bool, error) {
	count, err := a.db.Collection(ancRecordName).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *ancRecordDatabase) Insert(ctx context.Context, rec *models.AncRecord) error {
	_, err := a.db.Collection(ancRecordName).InsertOne(ctx, rec)
	return err
}

func (a *ancRecordDatabase) InsertBatch(ctx context.Context, recs []models.AncRecord) error {
	docs := make([]interface{}, 0, len(recs))
	for i := range recs {
		docs = append(docs, recs[i])
	}
	return a.db.Collection(ancRecordName).InsertMany(ctx, docs)
}

func (a *ancRecordDatabase) Replace(ctx context.Context, rec *models.AncRecord) error {
	return a.db.Collection(ancRecordName).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
}

func (a *ancRecordDatabase) SetMonthGroup(ctx context.Context, id, monthGroup string) error {
	return a.db.Collection(ancRecordName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"monthGroup": monthGroup}})
}

func (a *ancRecordDatabase) Delete(ctx context.Context, id string) error {
	return a.db.Collection(ancRecordName).DeleteOne(ctx, bson.M{"_id": id})
}

func (a *ancRecordDatabase) DeleteByMonth(ctx context.Context, monthGroup string) (int64, error) {
	return a.db.Collection(ancRecordName).DeleteMany(ctx, bson.M{"monthGroup": monthGroup})
}
