package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Dog bite case status values
const (
	DogBiteOngoing   = "Ongoing"
	DogBiteCompleted = "Completed"
	DogBiteDefaulted = "Defaulted"
)

// ArvScheduleDays are the post-exposure vaccination days counted from the
// bite date (Essen regimen).
var ArvScheduleDays = []int{0, 3, 7, 14, 28}

// DogBiteCase holds the structure for the dogBiteCases collection in mongo
type DogBiteCase struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	PatientName string             `json:"patientName" bson:"patientName"`
	Age         int                `json:"age" bson:"age"`
	Phone       string             `json:"phone" bson:"phone"`
	SubCenter   string             `json:"subCenter" bson:"subCenter"`
	BiteDate    string             `json:"biteDate" bson:"biteDate"`
	Category    string             `json:"category" bson:"category"` // WHO category I, II or III
	Doses       []ArvDose          `json:"doses" bson:"doses"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// ArvDose is one dose in a case's anti-rabies vaccination schedule
type ArvDose struct {
	Day       int    `json:"day" bson:"day"`
	DueDate   string `json:"dueDate" bson:"dueDate"`
	GivenDate string `json:"givenDate" bson:"givenDate"` // empty until administered
}
