package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

// DogBite exported for testing purposes
type DogBite struct {
	DB databases.DogBiteDatabase
}

// CreateDogBiteHandler registers a dog bite case and derives its
// anti-rabies vaccination schedule from the bite date
func (d DogBite) CreateDogBiteHandler(w http.ResponseWriter, r *http.Request) {
	var biteCase models.DogBiteCase
	if err := json.NewDecoder(r.Body).Decode(&biteCase); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	biteDate, err := ancstats.ParseRecordDate(biteCase.BiteDate)
	if err != nil {
		config.ErrorStatus("invalid bite date", http.StatusBadRequest, w, err)
		return
	}

	biteCase.ID = primitive.NewObjectID()
	biteCase.Status = models.DogBiteOngoing
	biteCase.Doses = buildArvSchedule(biteDate)
	now := primitive.NewDateTimeFromTime(time.Now())
	biteCase.CreatedAt = now
	biteCase.UpdatedAt = now

	_, err = d.DB.InsertOne(context.Background(), biteCase)
	if err != nil {
		config.ErrorStatus("failed to create dog bite case", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(biteCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DogBitesHandler returns dog bite cases, optionally filtered by status
func (d DogBite) DogBitesHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	dbResp, err := d.DB.Find(context.TODO(), filter)
	if err != nil {
		config.ErrorStatus("failed to get dog bite cases", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.DogBiteCase{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DogBiteByIDHandler returns a dog bite case by ID
func (d DogBite) DogBiteByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := d.DB.FindOne(context.Background(), bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get dog bite case by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateDogBiteHandler updates the editable fields of a dog bite case
func (d DogBite) UpdateDogBiteHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var biteCase models.DogBiteCase
	if err := json.NewDecoder(r.Body).Decode(&biteCase); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{
		"$set": bson.M{
			"patientName": biteCase.PatientName,
			"age":         biteCase.Age,
			"phone":       biteCase.Phone,
			"subCenter":   biteCase.SubCenter,
			"category":    biteCase.Category,
			"status":      biteCase.Status,
			"updatedAt":   primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if err := d.DB.UpdateOne(context.Background(), bson.M{"_id": cID}, update); err != nil {
		config.ErrorStatus("failed to update dog bite case", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"updated": "%s"}`, caseID)))
}

// DeleteDogBiteHandler deletes a dog bite case
func (d DogBite) DeleteDogBiteHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := d.DB.DeleteOne(context.Background(), bson.M{"_id": cID}); err != nil {
		config.ErrorStatus("failed to delete dog bite case", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"deleted": "%s"}`, caseID)))
}

// MarkDoseGivenHandler records a vaccination dose as administered. The
// case flips to Completed when the day-28 dose is given.
func (d DogBite) MarkDoseGivenHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		config.ErrorStatus("invalid dose day", http.StatusBadRequest, w, err)
		return
	}

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	biteCase, err := d.DB.FindOne(context.Background(), bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get dog bite case by ID", http.StatusNotFound, w, err)
		return
	}

	givenDate := r.URL.Query().Get("date")
	if givenDate == "" {
		givenDate = time.Now().UTC().Format("2006-01-02")
	}

	found := false
	allGiven := true
	for i := range biteCase.Doses {
		if biteCase.Doses[i].Day == day {
			biteCase.Doses[i].GivenDate = givenDate
			found = true
		}
		if biteCase.Doses[i].GivenDate == "" {
			allGiven = false
		}
	}
	if !found {
		config.ErrorStatus("no such dose day", http.StatusBadRequest, w, fmt.Errorf("day %d not in schedule", day))
		return
	}

	status := biteCase.Status
	if allGiven {
		status = models.DogBiteCompleted
	}

	update := bson.M{
		"$set": bson.M{
			"doses":     biteCase.Doses,
			"status":    status,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if err := d.DB.UpdateOne(context.Background(), bson.M{"_id": cID}, update); err != nil {
		config.ErrorStatus("failed to update dose", http.StatusInternalServerError, w, err)
		return
	}

	biteCase.Status = status
	b, err := json.Marshal(biteCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DosesDueHandler lists ongoing cases with a dose due on the given date
// (today when unset), for the morning follow-up list
func (d DogBite) DosesDueHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := ancstats.ParseRecordDate(date); err != nil {
		config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
		return
	}

	filter := bson.M{
		"status": models.DogBiteOngoing,
		"doses": bson.M{
			"$elemMatch": bson.M{"dueDate": date, "givenDate": ""},
		},
	}
	dbResp, err := d.DB.Find(context.TODO(), filter)
	if err != nil {
		config.ErrorStatus("failed to get due doses", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.DogBiteCase{}
	}

	zap.S().Debugf("doses due on %v: %v cases", date, len(dbResp))

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// buildArvSchedule derives the dose due dates from the bite date
func buildArvSchedule(biteDate time.Time) []models.ArvDose {
	doses := make([]models.ArvDose, 0, len(models.ArvScheduleDays))
	for _, day := range models.ArvScheduleDays {
		doses = append(doses, models.ArvDose{
			Day:     day,
			DueDate: biteDate.AddDate(0, 0, day).Format("2006-01-02"),
		})
	}
	return doses
}
