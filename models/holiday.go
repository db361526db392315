package models

// Holiday holds the structure for the holidays collection in mongo
type Holiday struct {
	Date string `json:"date" bson:"_id"` // "2006-01-02", one holiday per date
	Name string `json:"name" bson:"name"`
	Kind string `json:"kind" bson:"kind"` // gazetted or restricted
}
