package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqat-app/miqat/internal/engine"
	"github.com/miqat-app/miqat/internal/http/api"
	"github.com/miqat-app/miqat/internal/http/api/alerts/packets"
	"github.com/miqat-app/miqat/internal/model"
	"github.com/miqat-app/miqat/internal/settings"
)

type SettingsController struct {
	settings settings.Store
	engine   *engine.Engine
}

func NewSettingsController(st settings.Store, eng *engine.Engine) *SettingsController {
	return &SettingsController{settings: st, engine: eng}
}

func SettingsModule(st settings.Store, eng *engine.Engine) api.Module {
	ctl := NewSettingsController(st, eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/notifications/settings", ctl.getSettings)
		c.PUT("/notifications/settings", ctl.updateSettings)
		c.GET("/notifications/enabled", ctl.getEnabled)
		c.PUT("/notifications/enabled", ctl.updateEnabled)
		c.GET("/dark-mode", ctl.getDarkMode)
		c.PUT("/dark-mode", ctl.updateDarkMode)
	})
}

func (s *SettingsController) getSettings(ctx *gin.Context) (any, *api.APIError) {
	return s.settings.Config(ctx.Request.Context()), nil
}

func (s *SettingsController) updateSettings(ctx *gin.Context) (any, *api.APIError) {
	var request packets.UpdateNotificationSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !model.ValidBeforeMinutes(request.BeforeMinutes) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "before_minutes must be one of 1, 3, 5, 10, 15"}
	}

	cfg := model.NotificationConfig{
		BeforeMinutes:    request.BeforeMinutes,
		AtPrayerTime:     *request.AtPrayerTime,
		BeforePrayerTime: *request.BeforePrayerTime,
		Sound:            *request.Sound,
	}
	if err := s.settings.SaveConfig(ctx.Request.Context(), cfg); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
	}

	s.engine.ReloadSettings(ctx.Request.Context())
	return cfg, nil
}

func (s *SettingsController) getEnabled(ctx *gin.Context) (any, *api.APIError) {
	return packets.EnabledResponse{Enabled: s.settings.Enabled(ctx.Request.Context())}, nil
}

func (s *SettingsController) updateEnabled(ctx *gin.Context) (any, *api.APIError) {
	var request packets.UpdateEnabledRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.settings.SaveEnabled(ctx.Request.Context(), *request.Enabled); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save enabled flag"}
	}

	s.engine.ReloadSettings(ctx.Request.Context())
	return packets.EnabledResponse{Enabled: *request.Enabled}, nil
}

func (s *SettingsController) getDarkMode(ctx *gin.Context) (any, *api.APIError) {
	return packets.DarkModeResponse{DarkMode: s.settings.DarkMode(ctx.Request.Context())}, nil
}

func (s *SettingsController) updateDarkMode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.UpdateDarkModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.settings.SaveDarkMode(ctx.Request.Context(), *request.DarkMode); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save dark mode"}
	}
	return packets.DarkModeResponse{DarkMode: *request.DarkMode}, nil
}
