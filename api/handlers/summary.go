package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/api"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

// Summary exported for testing purposes
type Summary struct {
	DB     databases.SummaryDatabase
	Ledger *ancstats.Ledger
}

// SummariesHandler returns all monthly summaries in chronological order
func (s Summary) SummariesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.All(ctx)
	if err != nil {
		config.ErrorStatus("failed to get summaries", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MonthlySummary{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SummaryByMonthHandler returns the summary for one month bucket
func (s Summary) SummaryByMonthHandler(w http.ResponseWriter, r *http.Request) {
	monthGroup := mux.Vars(r)["month_group"]

	zap.S().Debugf("month_group: %v", monthGroup)

	dbResp, err := s.DB.Get(context.Background(), monthGroup)
	if err != nil {
		config.ErrorStatus("failed to get summary by month", http.StatusNotFound, w, err)
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

// RebuildHandler recomputes every summary from the records collection.
// Admin repair operation; returns the rebuilt summaries keyed by bucket.
func (s Summary) RebuildHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.Ledger.Rebuild(r.Context())
	if err != nil {
		config.ErrorStatus("failed to rebuild summaries", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("summary rebuild complete", "months", len(result))

	b, err := json.Marshal(result)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
