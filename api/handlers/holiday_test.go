package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"

	"github.com/drshravan/phc-helper-api/api/handlers"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/databases/mocks"
)

func TestHoliday_HolidaysHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/holidays", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "holidays").Return(conn)

	h := handlers.Holiday{DB: databases.NewHolidayDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.HolidaysHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := `{"response": "failed to get holidays, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHoliday_HolidaysHandlerEmptyResponse(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/holidays?upcoming=true", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "holidays").Return(conn)

	h := handlers.Holiday{DB: databases.NewHolidayDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.HolidaysHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `[]`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHoliday_CreateHolidayHandlerInvalidDate(t *testing.T) {
	body := `{"date": "not-a-date", "name": "Republic Day"}`
	req, err := http.NewRequest("POST", "/api/v1/holidays", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	h := handlers.Holiday{DB: databases.NewHolidayDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.CreateHolidayHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "invalid holiday date, unparseable date "not-a-date""}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHoliday_CreateHolidayHandler(t *testing.T) {
	body := `{"date": "2026-01-26", "name": "Republic Day", "kind": "gazetted"}`
	req, err := http.NewRequest("POST", "/api/v1/holidays", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertOneResultHelper := &mocks.InsertOneResultHelper{}

	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertOneResultHelper, nil)
	db.On("Collection", "holidays").Return(conn)

	h := handlers.Holiday{DB: databases.NewHolidayDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.CreateHolidayHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	expected := `{"date":"2026-01-26","name":"Republic Day","kind":"gazetted"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestHoliday_DeleteHolidayHandler(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/holidays/2026-01-26", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"date": "2026-01-26"})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	db.On("Collection", "holidays").Return(conn)

	h := handlers.Holiday{DB: databases.NewHolidayDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.DeleteHolidayHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"deleted": "2026-01-26"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
