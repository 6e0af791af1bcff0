package http

import (
	"context"

	linksservice "github.com/linkforge-app/linkforge-backend/internal/links/service"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

// ProjectSource yields project snapshots by id. Satisfied by the projects
// repository.
type ProjectSource interface {
	Get(ctx context.Context, id string) (projects.Project, error)
}

// Handler bundles the dependencies for link composition endpoints.
type Handler struct {
	composer *linksservice.Composer
	projects ProjectSource
}

func New(composer *linksservice.Composer, projects ProjectSource) *Handler {
	return &Handler{composer: composer, projects: projects}
}

type composeReq struct {
	BaseURL   string     `json:"baseUrl"`
	ProjectID string     `json:"projectId"`
	Params    []paramReq `json:"params"`
}

type paramReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type sessionParamResp struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	IsDefault bool   `json:"isDefault"`
}
