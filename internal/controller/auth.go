package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"taskdeck/internal/models"
	"taskdeck/internal/service"
	"taskdeck/pkg/logger"
)

// Auth exposes login and signup. One method per use case; all rules
// live in the service.
type Auth struct {
	svc       *service.Auth
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuth returns an Auth controller.
func NewAuth(svc *service.Auth, jwtSecret string, tokenTTL time.Duration) *Auth {
	return &Auth{svc: svc, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Username        string `json:"username" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type loginData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Login verifies credentials and returns the user with a signed token.
func (h *Auth) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	user, err := h.svc.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respond(c, http.StatusNotFound, "User not found", nil)
		return
	case errors.Is(err, service.ErrInvalidPassword):
		respond(c, http.StatusUnauthorized, "Invalid password", nil)
		return
	case err != nil:
		logger.Error(ctx, "Login failed", "error", err)
		respond(c, http.StatusInternalServerError, "Unexpected error", nil)
		return
	}
	token, err := h.issueToken(user.ID)
	if err != nil {
		logger.Error(ctx, "Sign token failed", "error", err)
		respond(c, http.StatusInternalServerError, "Unexpected error", nil)
		return
	}
	respond(c, http.StatusOK, "success", loginData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// Signup creates an account. A duplicate email is a conflict; the
// password/confirmation mismatch never reaches the service.
func (h *Auth) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.Password != req.ConfirmPassword {
		respond(c, http.StatusBadRequest, "Passwords do not match", nil)
		return
	}
	err := h.svc.Signup(ctx, models.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respond(c, http.StatusConflict, "Email already exists", nil)
		return
	case err != nil:
		logger.Error(ctx, "Signup failed", "error", err)
		respond(c, http.StatusInternalServerError, "Unexpected error", nil)
		return
	}
	respond(c, http.StatusCreated, "Signup successful", nil)
}

func (h *Auth) issueToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
