package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/api/handlers"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/databases/mocks"
	"github.com/drshravan/phc-helper-api/models"
)

func TestSummary_SummariesHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/summaries", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}

	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.(*MockDatabaseHelper).On("Collection", "ancSummaries").Return(conn)

	s := handlers.Summary{DB: databases.NewSummaryDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SummariesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := `{"response": "failed to get summaries, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSummary_SummariesHandlerEmptyResponse(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/summaries", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.(*MockDatabaseHelper).On("Collection", "ancSummaries").Return(conn)

	s := handlers.Summary{DB: databases.NewSummaryDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SummariesHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `[]`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSummary_SummaryByMonthHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/summaries/mar-2026", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"month_group": "mar-2026"})

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.MonthlySummary)
		(*arg).ID = "mar-2026"
		(*arg).Title = "Mar 2026"
		(*arg).Total = 4
		(*arg).Pending = 2
		(*arg).Delivered = 1
		(*arg).Aborted = 1
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "ancSummaries").Return(conn)

	s := handlers.Summary{DB: databases.NewSummaryDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SummaryByMonthHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got models.MonthlySummary
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "mar-2026" || got.Title != "Mar 2026" || got.Total != 4 || got.Pending != 2 {
		t.Errorf("handler returned unexpected summary: got %+v", got)
	}
}

func TestSummary_SummaryByMonthHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/summaries/mar-2026", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"month_group": "mar-2026"})

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "ancSummaries").Return(conn)

	s := handlers.Summary{DB: databases.NewSummaryDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SummaryByMonthHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := `{"response": "failed to get summary by month, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSummary_RebuildHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/summaries/rebuild", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	client := &mocks.ClientHelper{}
	recordConn := &mocks.CollectionHelper{}

	client.On("WithTransaction", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))
	recordConn.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "ancRecords").Return(recordConn)

	recordDB := databases.NewAncRecordDatabase(db)
	summaryDB := databases.NewSummaryDatabase(db)
	s := handlers.Summary{
		DB:     summaryDB,
		Ledger: ancstats.NewLedger(recordDB, summaryDB, client),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.RebuildHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}

	expected := `{"response": "failed to rebuild summaries, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
