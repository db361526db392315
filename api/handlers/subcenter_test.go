package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drshravan/phc-helper-api/api/handlers"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/databases/mocks"
)

func TestSubCenter_SubCentersHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/subcenters", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.On("Collection", "subCenters").Return(conn)

	s := handlers.SubCenter{DB: databases.NewSubCenterDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SubCentersHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := `{"response": "failed to get sub-centers, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSubCenter_SubCentersHandlerEmptyResponse(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/subcenters", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "subCenters").Return(conn)

	s := handlers.SubCenter{DB: databases.NewSubCenterDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.SubCentersHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `[]`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSubCenter_UpdateSubCenterHandlerBadHex(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/subcenters/asdf", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"subcenter_id": "asdf"})

	db := &MockDatabaseHelper{}

	s := handlers.SubCenter{DB: databases.NewSubCenterDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.UpdateSubCenterHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "failed to get objectID from Hex, the provided hex string is not a valid ObjectID"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSubCenter_UpdateSubCenterHandler(t *testing.T) {
	subCenterID := primitive.NewObjectID()
	body := `{"name": "Kodagali", "population": 5200, "eligibleCouples": 870, "expectedPregnancies": 120, "infants": 98}`
	req, err := http.NewRequest("PUT", "/api/v1/subcenters/"+subCenterID.Hex(), bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"subcenter_id": subCenterID.Hex()})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	db.On("Collection", "subCenters").Return(conn)

	s := handlers.SubCenter{DB: databases.NewSubCenterDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.UpdateSubCenterHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"updated": "` + subCenterID.Hex() + `"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
