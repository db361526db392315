package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SubCenter holds the structure for the subCenters collection in mongo.
// One document per sub-center with its annual population denominators.
type SubCenter struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id"`
	Name                string             `json:"name" bson:"name"`
	Population          int                `json:"population" bson:"population"`
	EligibleCouples     int                `json:"eligibleCouples" bson:"eligibleCouples"`
	ExpectedPregnancies int                `json:"expectedPregnancies" bson:"expectedPregnancies"`
	Infants             int                `json:"infants" bson:"infants"`
	UpdatedAt           primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
