package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

// Holiday exported for testing purposes
type Holiday struct {
	DB databases.HolidayDatabase
}

// HolidaysHandler returns the holiday calendar; ?upcoming=true restricts
// it to today onwards
func (h Holiday) HolidaysHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("upcoming") == "true" {
		today := time.Now().UTC().Format("2006-01-02")
		filter["_id"] = bson.M{"$gte": today}
	}

	dbResp, err := h.DB.Find(context.TODO(), filter)
	if err != nil {
		config.ErrorStatus("failed to get holidays", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Holiday{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateHolidayHandler adds a date to the holiday calendar
func (h Holiday) CreateHolidayHandler(w http.ResponseWriter, r *http.Request) {
	var holiday models.Holiday
	if err := json.NewDecoder(r.Body).Decode(&holiday); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if _, err := ancstats.ParseRecordDate(holiday.Date); err != nil {
		config.ErrorStatus("invalid holiday date", http.StatusBadRequest, w, err)
		return
	}

	if _, err := h.DB.InsertOne(context.Background(), holiday); err != nil {
		config.ErrorStatus("failed to create holiday", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(holiday)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DeleteHolidayHandler removes a date from the holiday calendar
func (h Holiday) DeleteHolidayHandler(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.DB.DeleteOne(context.Background(), bson.M{"_id": date}); err != nil {
		config.ErrorStatus("failed to delete holiday", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"deleted": "%s"}`, date)))
}
