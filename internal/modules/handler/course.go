package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
	"github.com/courseway-io/Courseway/internal/modules/service"
)

type CourseHandler struct {
	svc service.CourseService
}

func NewCourseHandler(s service.CourseService) *CourseHandler {
	return &CourseHandler{svc: s}
}

type GenerateCourseReq struct {
	VisitorID        string   `json:"visitor_id"`
	CurrentTime      string   `json:"current_time" binding:"required"`
	Session          int      `json:"session" binding:"required,min=1,max=2"`
	Hall             string   `json:"hall" binding:"required"`
	AgeYears         int      `json:"age_years" binding:"omitempty,min=1,max=18"`
	PreferredRoomIDs []string `json:"preferred_room_ids"`
	BreakInterval    int      `json:"break_interval" binding:"omitempty,min=1,max=10"`
	BreakDurationMin int      `json:"break_duration_min" binding:"omitempty,min=5,max=60"`
}

// GenerateCourse godoc
//
//	@Summary		Generate a course
//	@Description	Build and store an itinerary from the current time to the session close
//	@Tags			course
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.GenerateCourseReq	true	"GenerateCourse payload"
//	@Success		201	{object}	serializer.Response{data=model.Course}
//	@Router			/courses [post]
func (h *CourseHandler) GenerateCourse(c *gin.Context) {
	req := GenerateCourseReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	course, err := h.svc.Generate(c.Request.Context(), service.GenerateCourseInput{
		VisitorID:        req.VisitorID,
		CurrentTime:      req.CurrentTime,
		Session:          req.Session,
		Hall:             model.Hall(req.Hall),
		AgeYears:         req.AgeYears,
		PreferredRoomIDs: req.PreferredRoomIDs,
		BreakInterval:    req.BreakInterval,
		BreakDurationMin: req.BreakDurationMin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownHall):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("hall not found", err))
		case errors.Is(err, service.ErrUnknownSession):
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown session", err))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: course})
}

// GetCourse godoc
//
//	@Summary	Get a course
//	@Tags		course
//	@Produce	json
//	@Param		course_id	path	string	true	"Course ID"
//	@Success	200	{object}	serializer.Response{data=model.Course}
//	@Router		/courses/{course_id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid course id", err))
		return
	}

	course, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("course not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: course})
}

type ListCoursesReq struct {
	VisitorID string `form:"visitor_id" binding:"required"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=50"`
}

// ListCourses godoc
//
//	@Summary	List a visitor's courses
//	@Tags		course
//	@Produce	json
//	@Param		visitor_id	query	string	true	"Visitor ID"
//	@Param		limit		query	integer	false	"Max courses to return, default 20, max 50"
//	@Success	200	{object}	serializer.Response{data=[]model.Course}
//	@Router		/courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	req := ListCoursesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	courses, err := h.svc.ListByVisitor(c.Request.Context(), req.VisitorID, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: courses})
}

// DeleteCourse godoc
//
//	@Summary	Delete a course
//	@Tags		course
//	@Produce	json
//	@Param		course_id	path	string	true	"Course ID"
//	@Success	200	{object}	serializer.Response
//	@Router		/courses/{course_id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid course id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("course not found", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
