package handlers

import (
	"net/http"
	"time"

	"arnio/internal/auth"
	"arnio/internal/domain"
	"arnio/internal/middleware"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	AvatarURL string            `json:"avatar,omitempty"`
	Plan      string            `json:"plan"`
	Settings  domain.Settings   `json:"settings"`
	Usage     domain.UsageStats `json:"usageStats"`
	CreatedAt time.Time         `json:"createdAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Plan:      string(u.PlanID),
		Settings:  u.Settings,
		Usage:     u.Usage,
		CreatedAt: u.CreatedAt,
	}
}

func (a *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	token, user, err := a.Auth.SignUp(r.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, middleware.ClientIP(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, sessionResponse{Token: token, User: toUserDTO(user)})
}

func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	token, user, err := a.Auth.SignIn(r.Context(), req.Email, req.Password, middleware.ClientIP(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sessionResponse{Token: token, User: toUserDTO(user)})
}

func (a *App) SignOut(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		a.error(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := a.Auth.SignOut(r.Context(), sessionID); err != nil {
		a.domainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
