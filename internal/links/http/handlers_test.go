package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	linksdomain "github.com/linkforge-app/linkforge-backend/internal/links/domain"
	linksservice "github.com/linkforge-app/linkforge-backend/internal/links/service"
	projects "github.com/linkforge-app/linkforge-backend/internal/projects/domain"
	"github.com/linkforge-app/linkforge-backend/internal/projects/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Repo) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := repository.New(client)
	composer := linksservice.NewComposer(repo, linksservice.NewBitlyClient("http://127.0.0.1:1", 0), zap.NewNop())

	r := gin.New()
	New(composer, repo).Register(r.Group("/api/v1/links"))

	return r, repo
}

func postCompose(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req, err := http.NewRequest(http.MethodPost, "/api/v1/links/compose", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, repo *repository.Repo, mutate func(*projects.Project)) projects.Project {
	t.Helper()

	p := projects.Project{
		Name:        "Newsletter",
		UTMSource:   "news",
		UTMMedium:   "email",
		UTMCampaign: "sale",
		CustomParams: []projects.Param{
			{Key: "aff", Value: "42"},
		},
	}
	if mutate != nil {
		mutate(&p)
	}

	created, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

type composeResp struct {
	OK     bool                          `json:"ok"`
	Result linksdomain.CompositionResult `json:"result"`
}

func TestCompose_LongURL(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, nil)

	w := postCompose(t, r, gin.H{
		"baseUrl":   "https://shop.com/item?ref=1",
		"projectId": p.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "https://shop.com/item?ref=1&utm_source=news&utm_medium=email&utm_campaign=sale&aff=42", resp.Result.LongURL)
	assert.Empty(t, resp.Result.ShortURL)
}

func TestCompose_WithOverrides(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, nil)

	w := postCompose(t, r, gin.H{
		"baseUrl":   "https://shop.com/item",
		"projectId": p.ID,
		"params":    []gin.H{{"key": "aff", "value": "99"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Result.LongURL, "aff=99")
}

func TestCompose_CustomShortener(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, func(p *projects.Project) {
		p.Shortener = projects.ShortenerCustom
		p.CustomDomain = "go.my"
	})

	w := postCompose(t, r, gin.H{
		"baseUrl":   "https://shop.com/item",
		"projectId": p.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^https://go\.my/.{6}$`, resp.Result.ShortURL)
	assert.NotEmpty(t, resp.Result.Notice)
}

func TestCompose_BitlyWithoutCredentialIsPartialSuccess(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, func(p *projects.Project) {
		p.Shortener = projects.ShortenerBitly
	})

	w := postCompose(t, r, gin.H{
		"baseUrl":   "https://shop.com/item",
		"projectId": p.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, linksdomain.KindMissingCredential, resp.Result.ErrorKind)
	assert.NotEmpty(t, resp.Result.LongURL)
	assert.Empty(t, resp.Result.ShortURL)
}

func TestCompose_EmptyInput(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, nil)

	w := postCompose(t, r, gin.H{"baseUrl": "", "projectId": p.ID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompose_InvalidURL(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, nil)

	w := postCompose(t, r, gin.H{"baseUrl": "not-a-url", "projectId": p.ID})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCompose_UnknownProject(t *testing.T) {
	r, _ := setupRouter(t)

	w := postCompose(t, r, gin.H{"baseUrl": "https://a.com", "projectId": "missing"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionParams(t *testing.T) {
	r, repo := setupRouter(t)
	p := createProject(t, repo, nil)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/links/session/"+p.ID, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Params []sessionParamResp `json:"params"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Params, 6)

	assert.Equal(t, "utm_source", resp.Params[0].Key)
	assert.True(t, resp.Params[0].IsDefault)
	assert.Equal(t, "aff", resp.Params[5].Key)
	assert.False(t, resp.Params[5].IsDefault)
}
