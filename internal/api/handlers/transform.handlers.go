package routes

import (
	"math"
	"net/http"
	"strconv"

	spawnservice "shopspawn/internal/service/spawn"

	"github.com/gin-gonic/gin"
)

type transformHandlers struct {
	svc *spawnservice.SpawnService
}

// SetupTransformHandlers registers the coordinate conversion endpoints
func SetupTransformHandlers(router *gin.RouterGroup, svc *spawnservice.SpawnService) {
	h := &transformHandlers{svc: svc}
	group := router.Group("/transform")

	group.GET("", h.GetTransform)
	group.GET("/forward", h.Forward)
	group.GET("/inverse", h.Inverse)
}

// GetTransform returns the transform record of the loaded spawn set
func (h *transformHandlers) GetTransform(c *gin.Context) {
	tr, err := h.svc.Transform()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transform":      tr.Record(),
		"roundTripBound": tr.RoundTripBound(),
	})
}

// Forward converts lat/lng to game coordinates
func (h *transformHandlers) Forward(c *gin.Context) {
	tr, err := h.svc.Transform()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	lat, ok := floatQuery(c, "lat")
	if !ok {
		return
	}
	lng, ok := floatQuery(c, "lng")
	if !ok {
		return
	}

	x, z := tr.Forward(lat, lng)
	c.JSON(http.StatusOK, gin.H{"gameX": x, "gameZ": z})
}

// Inverse converts game coordinates to lat/lng
func (h *transformHandlers) Inverse(c *gin.Context) {
	tr, err := h.svc.Transform()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	x, ok := floatQuery(c, "x")
	if !ok {
		return
	}
	z, ok := floatQuery(c, "z")
	if !ok {
		return
	}

	lat, lng := tr.Inverse(x, z)
	c.JSON(http.StatusOK, gin.H{"lat": lat, "lng": lng})
}

// floatQuery parses a required query parameter, writing a 400 on failure.
func floatQuery(c *gin.Context, name string) (float64, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter " + name})
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameter " + name})
		return 0, false
	}
	return v, true
}
