package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	"github.com/drshravan/phc-helper-api/models"
)

var (
	errMissingFields   = errors.New("workerID and pin are required")
	errBadRole         = errors.New("unknown worker role")
	errDuplicateWorker = errors.New("workerID already registered")
)

type workerCreateRequest struct {
	WorkerID  string `json:"workerID"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Pin       string `json:"pin"`
	SubCenter string `json:"subCenter"`
}

// Worker exported for testing purposes
type Worker struct {
	DB databases.WorkerDatabase
}

// WorkerCreateHandler registers a health worker account. Only the bcrypt
// hash of the PIN is stored.
func (wk Worker) WorkerCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req workerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	req.WorkerID = strings.TrimSpace(req.WorkerID)
	if req.WorkerID == "" || req.Pin == "" {
		config.ErrorStatus("workerID and pin required", http.StatusBadRequest, w, errMissingFields)
		return
	}
	switch req.Role {
	case "anm", "asha", "mo":
	default:
		config.ErrorStatus("role must be anm, asha or mo", http.StatusBadRequest, w, errBadRole)
		return
	}

	if _, err := wk.DB.FindByWorkerID(r.Context(), req.WorkerID); err == nil {
		config.ErrorStatus("worker already exists", http.StatusConflict, w, errDuplicateWorker)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash pin", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	worker := models.Worker{
		ID:        primitive.NewObjectID(),
		WorkerID:  req.WorkerID,
		Name:      req.Name,
		Role:      req.Role,
		PinHash:   string(hash),
		SubCenter: req.SubCenter,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := wk.DB.InsertOne(context.Background(), worker); err != nil {
		config.ErrorStatus("failed to create worker", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(worker)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
