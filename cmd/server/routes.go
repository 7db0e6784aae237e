package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	adminapi "github.com/helios-signage/helios/internal/http/api/admin/endpoints"
	viewerapi "github.com/helios-signage/helios/internal/http/api/viewer/endpoints"
	"github.com/helios-signage/helios/internal/live"
	"github.com/helios-signage/helios/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	storageSystem storage.Storage,
	hub *live.Hub,
	coord *live.Coordinator,
) {
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
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.AuthSessionModule(env.SecretKey, store),
		adminapi.ScheduleModule(store),
		adminapi.SlideshowModule(store, storageSystem),
		adminapi.ScreenModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/viewer",
	},
		viewerapi.LiveModule(store, hub, coord),
		viewerapi.PairingModule(store),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
