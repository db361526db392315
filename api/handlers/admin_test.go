package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/drshravan/phc-helper-api/api/handlers"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/databases/mocks"
	"github.com/drshravan/phc-helper-api/models"
)

func adminTestDB(t *testing.T, role, pin string, findErr error) *MockDatabaseHelper {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(findErr).Run(func(args mock.Arguments) {
		if findErr != nil {
			return
		}
		arg := args.Get(0).(**models.Worker)
		(*arg).ID = primitive.NewObjectID()
		(*arg).WorkerID = "MO-01"
		(*arg).Role = role
		(*arg).PinHash = string(hash)
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "workers").Return(conn)

	return db
}

func TestAdmin_AdminLoginHandlerBadBody(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`[]`))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Admin{DB: databases.NewWorkerDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := "{\"error\":\"invalid request\"}\n"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestAdmin_AdminLoginHandlerMissingFields(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`{"workerID": "MO-01"}`))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Admin{DB: databases.NewWorkerDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := "{\"error\":\"workerID and pin required\"}\n"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestAdmin_AdminLoginHandlerUnknownWorker(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`{"workerID": "MO-99", "pin": "4321"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := adminTestDB(t, "mo", "4321", errors.New("mongo: no documents in result"))
	h := handlers.Admin{DB: databases.NewWorkerDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}

	expected := "{\"error\":\"invalid credentials\"}\n"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestAdmin_AdminLoginHandlerWrongPin(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`{"workerID": "MO-01", "pin": "9999"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := adminTestDB(t, "mo", "4321", nil)
	h := handlers.Admin{DB: databases.NewWorkerDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusUnauthorized)
	}

	expected := "{\"error\":\"invalid credentials\"}\n"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestAdmin_AdminLoginHandlerNotMedicalOfficer(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`{"workerID": "MO-01", "pin": "4321"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := adminTestDB(t, "anm", "4321", nil)
	h := handlers.Admin{DB: databases.NewWorkerDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}

	expected := "{\"error\":\"medical officer role required\"}\n"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestAdmin_AdminLoginHandler(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBufferString(`{"workerID": "MO-01", "pin": "4321"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := adminTestDB(t, "mo", "4321", nil)
	h := handlers.Admin{DB: databases.NewWorkerDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.AdminLoginHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp struct {
		Token string `json:"token"`
		Admin struct {
			WorkerID string `json:"workerID"`
			Role     string `json:"role"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Admin.WorkerID != "MO-01" || resp.Admin.Role != "mo" {
		t.Errorf("handler returned unexpected admin: got %+v", resp.Admin)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("returned token did not parse: %v", err)
	}
	if claims["scope"] != "admin" || claims["workerID"] != "MO-01" {
		t.Errorf("token carries unexpected claims: %+v", claims)
	}
}
