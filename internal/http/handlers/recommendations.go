package handlers

import (
	"net/http"

	"arnio/internal/domain"
)

func (a *App) currentPlan(r *http.Request) (domain.Plan, domain.UsageStats, error) {
	user, err := a.Auth.Me(r.Context(), a.currentUserID(r))
	if err != nil {
		return domain.Plan{}, domain.UsageStats{}, err
	}
	plan, err := domain.PlanByID(user.PlanID)
	if err != nil {
		return domain.Plan{}, domain.UsageStats{}, err
	}
	return plan, user.Usage, nil
}

func (a *App) RecommendBooks(w http.ResponseWriter, r *http.Request) {
	plan, _, err := a.currentPlan(r)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	books, err := a.Rec.Books(plan)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"recommendations": books})
}

func (a *App) RecommendMusic(w http.ResponseWriter, r *http.Request) {
	plan, _, err := a.currentPlan(r)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	tracks, err := a.Rec.Music(plan)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"tracks": tracks})
}

func (a *App) ReadingInsights(w http.ResponseWriter, r *http.Request) {
	plan, usage, err := a.currentPlan(r)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.Rec.Insights(plan, usage))
}
