package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"wavefm/core/apperr"
	"wavefm/core/auth"
	"wavefm/logger"
	"wavefm/model"
	"wavefm/repository"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyUsername
	ctxKeyToken
	ctxKeyTokenExpiry
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterHandler handles user registration requests.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.New(apperr.InvalidArgument, "Invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondError(w, apperr.New(apperr.InvalidArgument, "Username, email and password are required"))
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Warn("[Register] username or email already exists",
				logger.String("username", req.Username),
				logger.String("email", req.Email))
			respondError(w, apperr.New(apperr.Conflict, "Username or email already exists"))
			return
		}
		respondError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("[Register] user created", logger.Int64("userId", user.ID))
	respondJSON(w, http.StatusCreated, "Registration successful", tokenResponse{Token: token, User: user})
}

// LoginHandler handles login with either username or email.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.New(apperr.InvalidArgument, "Invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, apperr.New(apperr.InvalidArgument, "Username/email and password are required"))
		return
	}

	var user *model.User
	var err error
	if strings.Contains(req.Username, "@") {
		user, err = h.users.GetByEmail(r.Context(), req.Username)
	} else {
		user, err = h.users.GetByUsername(r.Context(), req.Username)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("[Login] invalid credentials", logger.String("username", req.Username))
		respondError(w, apperr.New(apperr.Unauthorized, "Invalid username/email or password"))
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("[Login] login successful", logger.String("username", user.Username))
	respondJSON(w, http.StatusOK, "Login successful", tokenResponse{Token: token, User: user})
}

// LogoutHandler revokes the caller's token for its remaining lifetime.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := ctx.Value(ctxKeyToken).(string)
	if !ok {
		respondError(w, apperr.New(apperr.Unauthorized, "No token provided."))
		return
	}
	expiresAt, _ := ctx.Value(ctxKeyTokenExpiry).(time.Time)

	if err := h.blacklist.Revoke(ctx, token, expiresAt); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Logout successful", nil)
}

// AuthMiddleware validates the Bearer token, rejects revoked tokens and
// loads the caller's identity into the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, apperr.New(apperr.Unauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, apperr.New(apperr.Unauthorized, "Invalid authorization header format"))
			return
		}
		token := parts[1]

		// The blacklist check comes before signature validation so a
		// revoked token is rejected even while still formally valid.
		revoked, err := h.blacklist.IsRevoked(r.Context(), token)
		if err != nil {
			respondError(w, err)
			return
		}
		if revoked {
			logger.Warn("[Auth] revoked token used")
			respondError(w, apperr.New(apperr.Unauthorized, "Token has been revoked."))
			return
		}

		claims, err := h.tokens.Parse(token)
		if err != nil {
			respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxKeyUsername, claims.Username)
		ctx = context.WithValue(ctx, ctxKeyToken, token)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, ctxKeyTokenExpiry, claims.ExpiresAt.Time)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// userIDFromContext extracts the authenticated user ID.
func userIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(ctxKeyUserID).(int64)
	if !ok {
		return 0, apperr.New(apperr.Unauthorized, "No authenticated user")
	}
	return userID, nil
}
