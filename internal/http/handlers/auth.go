package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/http/respond"
	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/models/dto"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/register", h.handleRegister)
	mux.HandleFunc("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid email format")
		return
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleTenant
	}
	if !models.ValidRole(role) {
		respond.Error(w, http.StatusBadRequest, "role must be poster or tenant")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: string(passwordHash),
	}
	if _, err := h.store.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "username or email already exists")
		default:
			log.Printf("create user error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	respond.Message(w, http.StatusCreated, "registration successful, please log in")
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same outcome as a password mismatch so the response does not
			// reveal which credential was wrong.
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("login: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.Data(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.PublicUser{ID: user.ID, Username: user.Username, Role: user.Role},
	})
}
