package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/linkforge-app/linkforge-backend/internal/api/http"
	linkshttp "github.com/linkforge-app/linkforge-backend/internal/links/http"
	linksservice "github.com/linkforge-app/linkforge-backend/internal/links/service"
	projhttp "github.com/linkforge-app/linkforge-backend/internal/projects/http"
	"github.com/linkforge-app/linkforge-backend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Redis       *redis.Client
	Bitly       *linksservice.BitlyClient
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	repo := repository.New(dep.Redis)

	projhttp.New(repo).Register(api.Group("/projects"))
	projhttp.NewSettingsHandler(repo).Register(api.Group("/settings"))

	composer := linksservice.NewComposer(repo, dep.Bitly, dep.Logger)
	linkshttp.New(composer, repo).Register(api.Group("/links"))

	return r
}
