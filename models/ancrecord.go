package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Delivery status values for an ANC record. Exactly one of these
// describes a record at any time; Delivered and Aborted additionally
// require their outcome date to be set.
const (
	StatusPending   = "Pending"
	StatusDelivered = "Delivered"
	StatusAborted   = "Aborted"
)

// Delivery mode values, meaningful only when the status is Delivered.
const (
	ModeNormal = "Normal"
	ModeLSCS   = "LSCS"
)

// AncRecord holds the structure for the ancRecords collection in mongo.
// The _id is the mother/ANC number assigned at registration (e.g. "M100")
// and is stable across edits; manually entered records get a uuid.
type AncRecord struct {
	ID             string             `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Age            int                `json:"age" bson:"age"`
	Phone          string             `json:"phone" bson:"phone"`
	SubCenter      string             `json:"subCenter" bson:"subCenter"`
	LmpDate        string             `json:"lmpDate" bson:"lmpDate"`
	EddDate        string             `json:"eddDate" bson:"eddDate"`
	DeliveryStatus string             `json:"deliveryStatus" bson:"deliveryStatus"`
	DeliveryMode   string             `json:"deliveryMode" bson:"deliveryMode"`
	FacilityType   string             `json:"facilityType" bson:"facilityType"` // free-form, classified as govt/pvt/other
	FacilityName   string             `json:"facilityName" bson:"facilityName"`
	IsHighRisk     LegacyBool         `json:"isHighRisk" bson:"isHighRisk"`
	DeliveredDate  string             `json:"deliveredDate" bson:"deliveredDate"`
	AbortedDate    string             `json:"abortedDate" bson:"abortedDate"`
	MonthGroup     string             `json:"monthGroup" bson:"monthGroup"` // denormalized bucket key, e.g. "jan-2026"
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
