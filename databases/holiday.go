package databases

// go generate: mockery --name HolidayDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const holidayName = "holidays"

// HolidayDatabase contains the methods to use with the holiday database
type HolidayDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Holiday, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type holidayDatabase struct {
	db DatabaseHelper
}

// NewHolidayDatabase initializes a new instance of the holiday database
// with the provided db connection
func NewHolidayDatabase(db DatabaseHelper) HolidayDatabase {
	return &holidayDatabase{
		db: db,
	}
}

func (h *holidayDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Holiday, error) {
	var holidays []models.Holiday
	cur, err := h.db.Collection(holidayName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&holidays)
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (h *holidayDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return h.db.Collection(holidayName).InsertOne(ctx, document, opts...)
}

func (h *holidayDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return h.db.Collection(holidayName).DeleteOne(ctx, filter, opts...)
}
