package routes

import (
	"log"
	"net/http"
	"strings"

	"shopspawn/internal/spawn"
	spawnservice "shopspawn/internal/service/spawn"

	"github.com/gin-gonic/gin"
)

type spawnHandlers struct {
	svc *spawnservice.SpawnService
}

// SetupSpawnHandlers registers the spawn listing endpoints
func SetupSpawnHandlers(router *gin.RouterGroup, svc *spawnservice.SpawnService) {
	h := &spawnHandlers{svc: svc}
	group := router.Group("/spawns")

	group.GET("/consumables", h.ListConsumables)
	group.GET("/equipment", h.ListEquipment)
	group.GET("/:id", h.GetSpawn)
}

// ListConsumables returns consumable spawns, optionally filtered by foodTypeId
func (h *spawnHandlers) ListConsumables(c *gin.Context) {
	spawns := h.svc.Consumables()
	if kind := c.Query("foodTypeId"); kind != "" {
		filtered := spawns[:0]
		for _, s := range spawns {
			if string(s.FoodTypeID) == kind {
				filtered = append(filtered, s)
			}
		}
		spawns = filtered
	}
	c.JSON(http.StatusOK, gin.H{"count": len(spawns), "spawns": spawns})
}

// ListEquipment returns equipment spawns, optionally filtered by itemCategory
func (h *spawnHandlers) ListEquipment(c *gin.Context) {
	spawns := h.svc.Equipment()
	if class := c.Query("itemCategory"); class != "" {
		filtered := spawns[:0]
		for _, s := range spawns {
			if string(s.ItemClass) == class {
				filtered = append(filtered, s)
			}
		}
		spawns = filtered
	}
	c.JSON(http.StatusOK, gin.H{"count": len(spawns), "spawns": spawns})
}

// GetSpawn looks a spawn up by its id prefix
func (h *spawnHandlers) GetSpawn(c *gin.Context) {
	id := c.Param("id")

	switch {
	case strings.HasPrefix(id, spawn.ConsumableIDPrefix):
		if s, ok := h.svc.Consumable(id); ok {
			c.JSON(http.StatusOK, gin.H{"kind": "consumable", "spawn": s})
			return
		}
	case strings.HasPrefix(id, spawn.EquipmentIDPrefix):
		if s, ok := h.svc.EquipmentByID(id); ok {
			c.JSON(http.StatusOK, gin.H{"kind": "equipment", "spawn": s})
			return
		}
	}

	log.Printf("Spawn %s not found", id)
	c.JSON(http.StatusNotFound, gin.H{"error": "spawn not found"})
}
