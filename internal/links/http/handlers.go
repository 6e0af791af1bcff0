package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	linksdomain "github.com/linkforge-app/linkforge-backend/internal/links/domain"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
)

func (h *Handler) compose(c *gin.Context) {
	var req composeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.Get(c.Request.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	overrides := make([]linksdomain.Entry, 0, len(req.Params))
	for _, pr := range req.Params {
		overrides = append(overrides, linksdomain.CustomEntry(pr.Key, pr.Value))
	}

	res := h.composer.Compose(c.Request.Context(), req.BaseURL, p, overrides)

	switch res.ErrorKind {
	case linksdomain.KindEmptyInput:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "result": res})
	case linksdomain.KindInvalidURL:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "result": res})
	default:
		// Shortening failures still carry a valid long URL; the call as a
		// whole succeeded.
		c.JSON(http.StatusOK, gin.H{"ok": true, "result": res})
	}
}

func (h *Handler) sessionParams(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	entries := linksdomain.SessionParams(p)
	rows := make([]sessionParamResp, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, sessionParamResp{Key: e.Key(), Value: e.Value(), IsDefault: e.IsDefault()})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "params": rows})
}
