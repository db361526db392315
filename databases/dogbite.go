package databases

// go generate: mockery --name DogBiteDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const dogBiteName = "dogBiteCases"

// DogBiteDatabase contains the methods to use with the dog bite case database
type DogBiteDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.DogBiteCase, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DogBiteCase, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type dogBiteDatabase struct {
	db DatabaseHelper
}

// NewDogBiteDatabase initializes a new instance of the dog bite case database
// with the provided db connection
func NewDogBiteDatabase(db DatabaseHelper) DogBiteDatabase {
	return &dogBiteDatabase{
		db: db,
	}
}

func (d *dogBiteDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.DogBiteCase, error) {
	dogBite := &models.DogBiteCase{}
	err := d.db.Collection(dogBiteName).FindOne(ctx, filter, opts...).Decode(&dogBite)
	if err != nil {
		return nil, err
	}
	return dogBite, nil
}

func (d *dogBiteDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.DogBiteCase, error) {
	var cases []models.DogBiteCase
	cur, err := d.db.Collection(dogBiteName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&cases)
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (d *dogBiteDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(dogBiteName).InsertOne(ctx, document, opts...)
}

func (d *dogBiteDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return d.db.Collection(dogBiteName).UpdateOne(ctx, filter, update, opts...)
}

func (d *dogBiteDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return d.db.Collection(dogBiteName).DeleteOne(ctx, filter, opts...)
}
