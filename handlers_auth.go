package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"meditrack/models"
)

// handleRegister creates an account and returns a signed token.
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 6 {
		writeErr(w, http.StatusBadRequest, "username and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "hash password")
		return
	}

	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := a.users.InsertOne(r.Context(), u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeErr(w, http.StatusConflict, "username already taken")
			return
		}
		writeErr(w, http.StatusInternalServerError, "create user")
		return
	}

	token, err := signJWT(a.cfg.JWTSecret, u.ID.Hex())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "sign token")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token})
}

// handleLogin verifies credentials and returns a signed token.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	var u models.User
	err := a.users.FindOne(r.Context(), bson.M{"username": strings.TrimSpace(req.Username)}).Decode(&u)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := signJWT(a.cfg.JWTSecret, u.ID.Hex())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "sign token")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token})
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(mustUserID(r))
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid token subject")
		return
	}
	var u models.User
	if err := a.users.FindOne(r.Context(), bson.M{"_id": oid}).Decode(&u); err != nil {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: u.ID.Hex(), Username: u.Username, Email: u.Email})
}
