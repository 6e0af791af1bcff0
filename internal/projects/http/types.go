package http

import "github.com/linkforge-app/linkforge-backend/internal/projects/repository"

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	repo *repository.Repo
}

func New(repo *repository.Repo) *Handler {
	return &Handler{repo: repo}
}

// SettingsHandler serves the global shortening credential slot.
type SettingsHandler struct {
	repo *repository.Repo
}

func NewSettingsHandler(repo *repository.Repo) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}
