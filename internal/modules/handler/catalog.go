package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
	"github.com/courseway-io/Courseway/internal/modules/service"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: s}
}

// GetHalls godoc
//
//	@Summary	List halls
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.HallInfo}
//	@Router		/halls [get]
func (h *CatalogHandler) GetHalls(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: h.svc.Halls()})
}

// GetInterestTypes godoc
//
//	@Summary	List interest categories
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]model.InterestTypeInfo}
//	@Router		/interest-types [get]
func (h *CatalogHandler) GetInterestTypes(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: h.svc.InterestTypes()})
}

type GetRoomsReq struct {
	AgeYears    int  `form:"age_years" binding:"omitempty,min=1,max=18"`
	PopularOnly bool `form:"popular"`
}

// GetRooms godoc
//
//	@Summary		List a hall's rooms
//	@Description	Rooms of one hall, optionally narrowed by child age and popularity
//	@Tags			catalog
//	@Produce		json
//	@Param			hall_id		path	string	true	"Hall ID"
//	@Param			age_years	query	integer	false	"Child age in years; filters age-restricted rooms"
//	@Param			popular		query	boolean	false	"Only popular rooms"
//	@Success		200	{object}	serializer.Response{data=[]model.ExperienceRoom}
//	@Router			/halls/{hall_id}/rooms [get]
func (h *CatalogHandler) GetRooms(c *gin.Context) {
	req := GetRoomsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rooms, err := h.svc.RoomsForHall(service.RoomsForHallInput{
		Hall:        model.Hall(c.Param("hall_id")),
		AgeYears:    req.AgeYears,
		PopularOnly: req.PopularOnly,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownHall) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("hall not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "list rooms failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: rooms})
}

type GetTimetableReq struct {
	CurrentTime string `form:"current_time" binding:"required"`
	Session     int    `form:"session,default=1" binding:"min=1,max=2"`
	AgeYears    int    `form:"age_years" binding:"omitempty,min=1,max=18"`
}

// GetTimetable godoc
//
//	@Summary		Hall timetable
//	@Description	Rooms grouped by duration with each room's next slot after the given time
//	@Tags			catalog
//	@Produce		json
//	@Param			hall_id			path	string	true	"Hall ID"
//	@Param			current_time	query	string	true	"Current wall-clock time, HH:MM"
//	@Param			session			query	integer	false	"Session selector, 1 or 2"
//	@Success		200	{object}	serializer.Response{data=service.TimetableOutput}
//	@Router			/halls/{hall_id}/timetable [get]
func (h *CatalogHandler) GetTimetable(c *gin.Context) {
	req := GetTimetableReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Timetable(service.TimetableInput{
		Hall:        model.Hall(c.Param("hall_id")),
		CurrentTime: req.CurrentTime,
		Session:     req.Session,
		AgeYears:    req.AgeYears,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownHall):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("hall not found", err))
		case errors.Is(err, service.ErrUnknownSession):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown session", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "timetable failed", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type GetSessionsReq struct {
	CurrentTime string `form:"current_time"`
}

// GetSessions godoc
//
//	@Summary	Session windows
//	@Tags		catalog
//	@Produce	json
//	@Param		current_time	query	string	false	"Current wall-clock time, HH:MM; resolves the session in progress"
//	@Success	200	{object}	serializer.Response{data=service.SessionsOutput}
//	@Router		/sessions [get]
func (h *CatalogHandler) GetSessions(c *gin.Context) {
	req := GetSessionsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: h.svc.Sessions(req.CurrentTime)})
}
