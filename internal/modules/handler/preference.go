package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
	"github.com/courseway-io/Courseway/internal/modules/service"
)

type PreferenceHandler struct {
	svc service.PreferenceService
}

func NewPreferenceHandler(s service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: s}
}

// GetPreferences godoc
//
//	@Summary		Get visitor preferences
//	@Description	Stored planning preferences, or the defaults when nothing is stored
//	@Tags			preference
//	@Produce		json
//	@Param			visitor_id	path	string	true	"Visitor ID"
//	@Success		200	{object}	serializer.Response{data=model.VisitorPreferences}
//	@Router			/visitors/{visitor_id}/preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), c.Param("visitor_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "get preferences failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: prefs})
}

type PutPreferencesReq struct {
	Hall             string   `json:"hall" binding:"required"`
	Session          int      `json:"session" binding:"required,min=1,max=2"`
	ChildAgeYears    int      `json:"child_age_years" binding:"omitempty,min=1,max=18"`
	PreferredRoomIDs []string `json:"preferred_room_ids"`
	BreakInterval    int      `json:"break_interval" binding:"omitempty,min=1,max=10"`
	BreakDurationMin int      `json:"break_duration_min" binding:"omitempty,min=5,max=60"`
}

// PutPreferences godoc
//
//	@Summary		Save visitor preferences
//	@Description	Replaces the stored preference document
//	@Tags			preference
//	@Accept			json
//	@Produce		json
//	@Param			visitor_id	path	string						true	"Visitor ID"
//	@Param			payload		body	handler.PutPreferencesReq	true	"PutPreferences payload"
//	@Success		200	{object}	serializer.Response{data=model.VisitorPreferences}
//	@Router			/visitors/{visitor_id}/preferences [put]
func (h *PreferenceHandler) PutPreferences(c *gin.Context) {
	req := PutPreferencesReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	prefs, err := h.svc.Put(c.Request.Context(), c.Param("visitor_id"), &model.VisitorPreferences{
		Hall:             model.Hall(req.Hall),
		Session:          req.Session,
		ChildAgeYears:    req.ChildAgeYears,
		PreferredRoomIDs: req.PreferredRoomIDs,
		BreakInterval:    req.BreakInterval,
		BreakDurationMin: req.BreakDurationMin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownHall):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown hall", err))
		case errors.Is(err, service.ErrUnknownSession):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown session", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "save preferences failed", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: prefs})
}

// DeletePreferences godoc
//
//	@Summary	Delete visitor preferences
//	@Tags		preference
//	@Produce	json
//	@Param		visitor_id	path	string	true	"Visitor ID"
//	@Success	200	{object}	serializer.Response
//	@Router		/visitors/{visitor_id}/preferences [delete]
func (h *PreferenceHandler) DeletePreferences(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("visitor_id")); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "delete preferences failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
