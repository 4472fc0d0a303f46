package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqat-app/miqat/internal/engine"
	"github.com/miqat-app/miqat/internal/http/api"
	"github.com/miqat-app/miqat/internal/http/api/alerts/packets"
)

type EngineController struct {
	engine *engine.Engine
}

func NewEngineController(eng *engine.Engine) *EngineController {
	return &EngineController{engine: eng}
}

func EngineModule(eng *engine.Engine) api.Module {
	ctl := NewEngineController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/engine/status", ctl.status)
		c.POST("/engine/navigate", ctl.navigate)
	})
}

func (e *EngineController) status(ctx *gin.Context) (any, *api.APIError) {
	return e.engine.Status(), nil
}

func (e *EngineController) navigate(ctx *gin.Context) (any, *api.APIError) {
	var request packets.NavigateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	date, err := e.engine.Navigate(ctx.Request.Context(), request.Direction)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not navigate"}
	}
	return packets.NavigateResponse{Date: date}, nil
}
