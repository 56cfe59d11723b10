package handlers

import (
	"net/http"

	"arnio/internal/domain"
)

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Auth.Me(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

func (a *App) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := decodeJSON(r, &settings); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	if err := a.Auth.UpdateSettings(r.Context(), a.currentUserID(r), settings); err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, settings)
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

func (a *App) ChangePlan(w http.ResponseWriter, r *http.Request) {
	var req changePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	plan, err := a.Auth.ChangePlan(r.Context(), a.currentUserID(r), domain.PlanID(req.Plan))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toPlanDTO(plan))
}

func (a *App) CancelPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := a.Auth.CancelPlan(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toPlanDTO(plan))
}

func (a *App) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := a.Auth.DeleteAccount(r.Context(), a.currentUserID(r)); err != nil {
		a.domainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
