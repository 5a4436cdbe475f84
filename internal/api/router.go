package api

import (
	routes "shopspawn/internal/api/handlers"
	spawnservice "shopspawn/internal/service/spawn"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, config map[string]string, svc *spawnservice.SpawnService) {
	api := r.Group("/api")

	routes.SetupMainHandlers(r.Group(""), config, svc)
	routes.SetupTransformHandlers(api, svc)
	routes.SetupSpawnHandlers(api, svc)
}
