package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miqat-app/miqat/internal/db"
	"github.com/miqat-app/miqat/internal/engine"
	"github.com/miqat-app/miqat/internal/http/api"
	"github.com/miqat-app/miqat/internal/http/api/prayers/packets"
	"github.com/miqat-app/miqat/internal/model"
	"github.com/miqat-app/miqat/internal/prayer"
)

type PrayerController struct {
	days   engine.DayService
	store  db.Store
	engine *engine.Engine
}

func NewPrayerController(days engine.DayService, store db.Store, eng *engine.Engine) *PrayerController {
	return &PrayerController{days: days, store: store, engine: eng}
}

func PrayerModule(days engine.DayService, store db.Store, eng *engine.Engine) api.Module {
	ctl := NewPrayerController(days, store, eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer-times/:date", ctl.getPrayerTimes)
		c.GET("/adjustments/:date", ctl.getAdjustments)
		c.POST("/adjust-prayers/:date", ctl.adjustPrayers)
		c.GET("/hijri-adjustment/:date", ctl.getHijriAdjustment)
		c.POST("/adjust-hijri/:date", ctl.adjustHijri)
	})
}

func dateParam(ctx *gin.Context) (string, *api.APIError) {
	date := ctx.Param("date")
	if _, err := prayer.ParseDateKey(date); err != nil {
		return "", &api.APIError{Code: http.StatusBadRequest, Message: "invalid date, expected DD-MMM-YYYY"}
	}
	return date, nil
}

func (p *PrayerController) getPrayerTimes(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	day, err := p.days.Day(ctx.Request.Context(), date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to assemble prayer times"}
	}
	return day, nil
}

func (p *PrayerController) getAdjustments(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	adjustments, err := p.store.GetPrayerAdjustments(date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load adjustments"}
	}
	if adjustments == nil {
		adjustments = []model.PrayerAdjustment{}
	}
	return adjustments, nil
}

func (p *PrayerController) adjustPrayers(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AdjustPrayersRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	adjustments := make([]model.PrayerAdjustment, 0, len(request.Adjustments))
	for _, a := range request.Adjustments {
		adjustments = append(adjustments, model.PrayerAdjustment{
			PrayerName:    a.PrayerName,
			Adjustment:    a.Adjustment,
			EndAdjustment: a.EndAdjustment,
		})
	}

	if err := p.store.SavePrayerAdjustments(date, adjustments); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save adjustments"}
	}

	// the store is authoritative; the engine refetches rather than
	// patching its loaded copy
	if p.engine.SelectedDate() == date {
		p.engine.Reload(ctx.Request.Context())
	}

	return packets.MessageResponse{Message: "Adjustments saved successfully"}, nil
}

func (p *PrayerController) getHijriAdjustment(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	days, err := p.store.GetHijriAdjustment(date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load hijri adjustment"}
	}
	return packets.HijriAdjustmentResponse{DayAdjustment: days}, nil
}

func (p *PrayerController) adjustHijri(ctx *gin.Context) (any, *api.APIError) {
	date, apiErr := dateParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AdjustHijriRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.SaveHijriAdjustment(date, request.DayAdjustment); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save hijri adjustment"}
	}

	if p.engine.SelectedDate() == date {
		p.engine.Reload(ctx.Request.Context())
	}

	return packets.MessageResponse{Message: "Hijri adjustment saved successfully"}, nil
}
