package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidsummary/backend/internal/logging"
	"github.com/vidsummary/backend/internal/models"
	"github.com/vidsummary/backend/internal/repositories"
)

// AuthHandler implements user authentication endpoints.
type AuthHandler struct {
	Users   UserStore
	Tokens  TokenService
	NowFunc func() time.Time
	// CompareFunc checks a password against a stored hash. Defaults to bcrypt.
	CompareFunc func(hash, password []byte) error
}

// dummyPasswordHash is compared against on unknown usernames so both login failures cost one bcrypt
// comparison.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("vidsummary-unknown-user"), bcrypt.DefaultCost)
	if err != nil {
		return nil
	}
	return hash
})

// Login handles POST /api/auth/login requests.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil || h.Tokens == nil {
		logger.Error("authentication dependencies unavailable", "hasUsers", h.Users != nil, "hasTokens", h.Tokens != nil)
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		logger.Warn("login missing credentials", "username", req.Username)
		respondError(ctx, w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = h.compare(dummyPasswordHash(), []byte(req.Password))
			logger.Warn("login unknown user", "username", req.Username)
			respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error("login user lookup failed", "username", req.Username, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "unable to verify credentials")
		return
	}

	if err := h.compare([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("login password mismatch", "userId", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger.Error("failed to issue token", "error", err, "userId", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondJSON(ctx, w, http.StatusOK, loginResponse{
		Token:     token.Token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: token.ExpiresAt,
	})
}

// SignUp handles POST /api/auth/signup requests.
func (h AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil {
		logger.Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid signup payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		logger.Warn("signup missing credentials", "username", req.Username)
		respondError(ctx, w, http.StatusBadRequest, "username and password are required")
		return
	}

	if _, err := h.Users.FindByUsername(ctx, req.Username); err == nil {
		logger.Warn("signup existing account", "username", req.Username)
		respondError(ctx, w, http.StatusConflict, "username already taken")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		logger.Error("signup user lookup failed", "error", err, "username", req.Username)
		respondError(ctx, w, http.StatusInternalServerError, "unable to verify existing accounts")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("signup failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hashed),
		CreatedAt:    h.now(),
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logger.Warn("signup conflict", "username", req.Username)
			respondError(ctx, w, http.StatusConflict, "username already taken")
			return
		}
		logger.Error("signup failed to create user", "error", err, "username", req.Username)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, signUpResponse{UserID: user.ID, Username: user.Username})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h AuthHandler) compare(hash, password []byte) error {
	if h.CompareFunc != nil {
		return h.CompareFunc(hash, password)
	}
	return bcrypt.CompareHashAndPassword(hash, password)
}

func (h AuthHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
