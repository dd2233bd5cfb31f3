package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clearlist/screener-backend/usecases"
)

type Configuration struct {
	Env     string
	Port    string
	Timeout time.Duration
}

func New(router *gin.Engine, conf Configuration, uc usecases.Usecases) *http.Server {
	addRoutes(router, uc)
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: conf.Timeout,
		ReadTimeout:  conf.Timeout,
		IdleTimeout:  60 * time.Second,
		Handler:      router,
	}
}

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe)
	r.GET("/readiness", handleReadinessProbe(uc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/screenings", handleScreen(uc))
	r.POST("/screenings/batch", handleScreenBatch(uc))
	r.GET("/screenings/events", handleListScreeningEvents(uc))

	r.POST("/ingestion/:source", handleIngestFeed(uc))
	r.POST("/ingestion/:source/refresh", handleRefreshFeed(uc))
}
