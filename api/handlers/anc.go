package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

var (
	// Page denotes the starting Page for pagination results
	Page = 0
)

// Anc exported for testing purposes
type Anc struct {
	DB     databases.AncRecordDatabase
	Ledger *ancstats.Ledger
}

// CreateAncRecordHandler registers a new ANC record and files it into its
// month bucket through the ledger
func (a Anc) CreateAncRecordHandler(w http.ResponseWriter, r *http.Request) {
	var rec models.AncRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if rec.ID == "" {
		// manual entry without a mother/ANC number
		rec.ID = uuid.New().String()
	}
	if rec.DeliveryStatus == "" {
		rec.DeliveryStatus = models.StatusPending
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	rec.CreatedAt = now
	rec.UpdatedAt = now

	err := a.Ledger.CreateRecord(r.Context(), &rec)
	if errors.Is(err, ancstats.ErrNoEffectiveDate) {
		config.ErrorStatus("record has no usable date", http.StatusBadRequest, w, err)
		return
	}
	if errors.Is(err, ancstats.ErrDuplicateRecord) {
		config.ErrorStatus("record already exists", http.StatusConflict, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to save record", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(rec)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// AncRecordByIDHandler returns an ANC record by ID
func (a Anc) AncRecordByIDHandler(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["record_id"]

	zap.S().Debugf("record_id: %v", recordID)

	dbResp, err := a.DB.FindByID(context.Background(), recordID)
	if err != nil {
		config.ErrorStatus("failed to get record by ID", http.StatusNotFound, w, err)
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

// AncRecordsHandler returns ANC records, optionally filtered by month
// bucket or sub-center, paginated
func (a Anc) AncRecordsHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
		Limit = 10
	}
	Page = getPage(Page, r)

	filter := bson.M{}
	if monthGroup := r.URL.Query().Get("month_group"); monthGroup != "" {
		filter["monthGroup"] = monthGroup
	}
	if subCenter := r.URL.Query().Get("sub_center"); subCenter != "" {
		filter["subCenter"] = subCenter
	}

	dbResp, err := a.DB.FindPage(context.TODO(), filter, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get records", http.StatusNotFound, w, err)
		return
	}
	// Because the frontend requires that the data elements exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.AncRecord{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateAncRecordHandler replaces a record and reconciles the month
// summaries through the ledger
func (a Anc) UpdateAncRecordHandler(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["record_id"]

	var rec models.AncRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	rec.ID = recordID
	rec.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	err := a.Ledger.UpdateRecord(r.Context(), &rec)
	if errors.Is(err, ancstats.ErrNoEffectiveDate) {
		config.ErrorStatus("record has no usable date", http.StatusBadRequest, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update record", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(rec)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteAncRecordHandler deletes a record and subtracts its contribution
// from its month bucket
func (a Anc) DeleteAncRecordHandler(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["record_id"]

	if err := a.Ledger.DeleteRecord(r.Context(), recordID); err != nil {
		config.ErrorStatus("failed to delete record", http.StatusNotFound, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"deleted": "%s"}`, recordID)))
}

// ImportAncRecordsHandler bulk imports rows pasted from a register and
// returns the per-row report
func (a Anc) ImportAncRecordsHandler(w http.ResponseWriter, r *http.Request) {
	var rows []models.AncRecord
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	report, err := a.Ledger.ImportBatch(r.Context(), rows)
	if err != nil {
		config.ErrorStatus("failed to import records", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteMonthHandler removes every record filed under a month along with
// its summary
func (a Anc) DeleteMonthHandler(w http.ResponseWriter, r *http.Request) {
	monthGroup := mux.Vars(r)["month_group"]

	deleted, err := a.Ledger.DeleteMonth(r.Context(), monthGroup)
	if err != nil {
		config.ErrorStatus("failed to delete month", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("month deleted",
		"monthGroup", monthGroup,
		"recordsDeleted", deleted,
	)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"monthGroup": "%s", "recordsDeleted": %d}`, monthGroup, deleted)))
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		}
		if Page < 0 {
			zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", Page))
			return 0
		}
	}
	return Page
}
