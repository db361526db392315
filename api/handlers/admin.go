package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/drshravan/phc-helper-api/databases"
)

type adminLoginRequest struct {
	WorkerID string `json:"workerID"`
	Pin      string `json:"pin"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID       string `json:"id"`
		WorkerID string `json:"workerID"`
		Role     string `json:"role"`
	} `json:"admin"`
}

// Admin represents the admin handler. Only workers with the medical
// officer role can log in here; the issued JWT gates the repair routes.
type Admin struct {
	DB databases.WorkerDatabase
}

// AdminLoginHandler handles medical officer login and returns a JWT
func (h Admin) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	workerID := strings.TrimSpace(req.WorkerID)
	if workerID == "" || req.Pin == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "workerID and pin required"})
		return
	}

	worker, err := h.DB.FindByWorkerID(r.Context(), workerID)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PinHash), []byte(req.Pin)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		return
	}

	if worker.Role != "mo" {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "medical officer role required"})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":      worker.ID.Hex(),
		"workerID": worker.WorkerID,
		"role":     worker.Role,
		"scope":    "admin",
		"typ":      "access",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp adminLoginResponse
	resp.Token = signed
	resp.Admin.ID = worker.ID.Hex()
	resp.Admin.WorkerID = worker.WorkerID
	resp.Admin.Role = worker.Role

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
