package server

import (
	"net/http"

	analyticsdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/gin-gonic/gin"
)

// @Summary      Get Analytics
// @Description  Dashboard analytics snapshot for the active shop
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        refresh  query  bool  false  "Bypass the cached snapshot"
// @Success      200  {object}  analyticsdomain.Snapshot
// @Router       /analytics [get]
func (s *Server) GetAnalytics(c *gin.Context) {
	snapshot, err := s.snapshot(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

// @Summary      Get Weekly Analytics
// @Description  Rolling week buckets for the dashboard chart
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        refresh  query  bool  false  "Bypass the cached snapshot"
// @Success      200  {object}  []analyticsdomain.WeeklyBucket
// @Router       /analytics/weekly [get]
func (s *Server) GetWeeklyAnalytics(c *gin.Context) {
	snapshot, err := s.snapshot(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot.WeeklyBuckets})
}

// snapshot serves the cached snapshot while fresh and recomputes on a
// miss, warming the cache for the next request.
func (s *Server) snapshot(c *gin.Context) (*analyticsdomain.Snapshot, error) {
	ctx := c.Request.Context()
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		return nil, analyticsdomain.ErrInvalidShop
	}

	if c.Query("refresh") != "true" {
		if snapshot, ok := s.snapshots.Get(shopID); ok {
			return snapshot, nil
		}
	}

	snapshot, err := s.analyticsSvc.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshots.Put(shopID, snapshot)
	return snapshot, nil
}
