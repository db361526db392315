package databases

// go generate: mockery --name SubCenterDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const subCenterName = "subCenters"

// SubCenterDatabase contains the methods to use with the sub-center database
type SubCenterDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SubCenter, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SubCenter, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type subCenterDatabase struct {
	db DatabaseHelper
}

// NewSubCenterDatabase initializes a new instance of the sub-center database
// with the provided db connection
func NewSubCenterDatabase(db DatabaseHelper) SubCenterDatabase {
	return &subCenterDatabase{
		db: db,
	}
}

func (s *subCenterDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SubCenter, error) {
	subCenter := &models.SubCenter{}
	err := s.db.Collection(subCenterName).FindOne(ctx, filter, opts...).Decode(&subCenter)
	if err != nil {
		return nil, err
	}
	return subCenter, nil
}

func (s *subCenterDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SubCenter, error) {
	var subCenters []models.SubCenter
	cur, err := s.db.Collection(subCenterName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&subCenters)
	if err != nil {
		return nil, err
	}
	return subCenters, nil
}

func (s *subCenterDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(subCenterName).InsertOne(ctx, document, opts...)
}

func (s *subCenterDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return s.db.Collection(subCenterName).UpdateOne(ctx, filter, update, opts...)
}
