package databases

// go generate: mockery --name WorkerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drshravan/phc-helper-api/models"
)

const workerName = "workers"

// WorkerDatabase contains the methods to use with the health worker database
type WorkerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Worker, error)
	FindByWorkerID(ctx context.Context, workerID string) (*models.Worker, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type workerDatabase struct {
	db DatabaseHelper
}

// NewWorkerDatabase initializes a new instance of the worker database with
// the provided db connection
func NewWorkerDatabase(db DatabaseHelper) WorkerDatabase {
	return &workerDatabase{
		db: db,
	}
}

func (wd *workerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Worker, error) {
	worker := &models.Worker{}
	err := wd.db.Collection(workerName).FindOne(ctx, filter, opts...).Decode(&worker)
	if err != nil {
		return nil, err
	}
	return worker, nil
}

func (wd *workerDatabase) FindByWorkerID(ctx context.Context, workerID string) (*models.Worker, error) {
	return wd.FindOne(ctx, bson.M{"workerID": workerID})
}

func (wd *workerDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return wd.db.Collection(workerName).InsertOne(ctx, document, opts...)
}

func (wd *workerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	return wd.db.Collection(workerName).UpdateOne(ctx, filter, update, opts...)
}
