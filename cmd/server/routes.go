package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/miqat-app/miqat/internal/db"
	"github.com/miqat-app/miqat/internal/engine"
	"github.com/miqat-app/miqat/internal/http/api"
	alertsapi "github.com/miqat-app/miqat/internal/http/api/alerts/endpoints"
	prayersapi "github.com/miqat-app/miqat/internal/http/api/prayers/endpoints"
	"github.com/miqat-app/miqat/internal/settings"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, days engine.DayService, store db.Store, st settings.Store, eng *engine.Engine) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		prayersapi.PrayerModule(days, store, eng),
		alertsapi.SettingsModule(st, eng),
		alertsapi.EngineModule(eng),
	)
}
