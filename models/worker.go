package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Worker holds the structure for the workers collection in mongo.
// Health workers log in with their worker ID and a numeric PIN; only the
// bcrypt hash of the PIN is stored.
type Worker struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	WorkerID  string             `json:"workerID" bson:"workerID"`
	Name      string             `json:"name" bson:"name"`
	Role      string             `json:"role" bson:"role"` // anm, asha or mo
	PinHash   string             `json:"-" bson:"pinHash"`
	SubCenter string             `json:"subCenter" bson:"subCenter"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
