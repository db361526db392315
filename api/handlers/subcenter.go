package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

// SubCenter exported for testing purposes
type SubCenter struct {
	DB databases.SubCenterDatabase
}

// SubCentersHandler returns all sub-centers with their population tables
func (s SubCenter) SubCentersHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := s.DB.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get sub-centers", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.SubCenter{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateSubCenterHandler registers a sub-center
func (s SubCenter) CreateSubCenterHandler(w http.ResponseWriter, r *http.Request) {
	var subCenter models.SubCenter
	if err := json.NewDecoder(r.Body).Decode(&subCenter); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	subCenter.ID = primitive.NewObjectID()
	subCenter.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := s.DB.InsertOne(context.Background(), subCenter); err != nil {
		config.ErrorStatus("failed to create sub-center", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(subCenter)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateSubCenterHandler updates a sub-center's annual population
// denominators
func (s SubCenter) UpdateSubCenterHandler(w http.ResponseWriter, r *http.Request) {
	subCenterID := mux.Vars(r)["subcenter_id"]

	scID, err := primitive.ObjectIDFromHex(subCenterID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var subCenter models.SubCenter
	if err := json.NewDecoder(r.Body).Decode(&subCenter); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{
		"$set": bson.M{
			"name":                subCenter.Name,
			"population":          subCenter.Population,
			"eligibleCouples":     subCenter.EligibleCouples,
			"expectedPregnancies": subCenter.ExpectedPregnancies,
			"infants":             subCenter.Infants,
			"updatedAt":           primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if err := s.DB.UpdateOne(context.Background(), bson.M{"_id": scID}, update); err != nil {
		config.ErrorStatus("failed to update sub-center", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"updated": "%s"}`, subCenterID)))
}
