package api

import (
	_ "gdp-pipeline/docs" // registers the swagger document
	"gdp-pipeline/internal/api/handler"
	"gdp-pipeline/internal/metrics"
	"gdp-pipeline/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/exports", handler.CreateExport)
	r.GET("/api/v1/exports", handler.ListExports)
	// More specific routes first
	r.GET("/api/v1/exports/*/errors", handler.GetExportErrors)
	r.GET("/api/v1/exports/*/logs", handler.GetExportLogs)
	// Generic export route last
	r.GET("/api/v1/exports/*", handler.GetExport)

	r.GET("/api/v1/gdp", handler.GetDocument)
	r.GET("/api/v1/gdp/latest", handler.GetLatest)
	r.GET("/api/v1/gdp/statistics", handler.GetStatistics)
	r.GET("/api/v1/gdp/countries/*", handler.GetCountry)

	r.Mount("/metrics", metrics.Handler())
	r.Mount("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
