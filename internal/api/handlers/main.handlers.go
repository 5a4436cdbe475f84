package routes

import (
	"net/http"

	spawnservice "shopspawn/internal/service/spawn"

	"github.com/gin-gonic/gin"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, config map[string]string, svc *spawnservice.SpawnService) {
	router.GET("/", func(c *gin.Context) {
		body := gin.H{
			"port":   config["port"],
			"anchor": config["anchor"],
			"loaded": false,
		}
		if info, err := svc.Info(); err == nil {
			body["loaded"] = true
			body["runId"] = info.RunID
			body["consumables"] = info.Consumables
			body["equipment"] = info.Equipment
			body["loadedAt"] = info.LoadedAt
		}
		c.JSON(http.StatusOK, body)
	})
}
