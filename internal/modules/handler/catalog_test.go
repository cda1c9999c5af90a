package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
	"github.com/courseway-io/Courseway/internal/modules/service"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Halls() []model.HallInfo {
	args := m.Called()
	return args.Get(0).([]model.HallInfo)
}

func (m *MockCatalogService) InterestTypes() []model.InterestTypeInfo {
	args := m.Called()
	return args.Get(0).([]model.InterestTypeInfo)
}

func (m *MockCatalogService) RoomsForHall(in service.RoomsForHallInput) ([]model.ExperienceRoom, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExperienceRoom), args.Error(1)
}

func (m *MockCatalogService) Timetable(in service.TimetableInput) (*service.TimetableOutput, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TimetableOutput), args.Error(1)
}

func (m *MockCatalogService) Sessions(currentTime string) service.SessionsOutput {
	args := m.Called(currentTime)
	return args.Get(0).(service.SessionsOutput)
}

func setupCatalogRouter(h *CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/halls", h.GetHalls)
	r.GET("/halls/:hall_id/rooms", h.GetRooms)
	r.GET("/halls/:hall_id/timetable", h.GetTimetable)
	r.GET("/interest-types", h.GetInterestTypes)
	r.GET("/sessions", h.GetSessions)
	return r
}

func TestCatalogHandler_GetHalls(t *testing.T) {
	mockService := &MockCatalogService{}
	mockService.On("Halls").Return([]model.HallInfo{{ID: model.HallChildren, Name: "Children"}})
	router := setupCatalogRouter(NewCatalogHandler(mockService))

	req := httptest.NewRequest("GET", "/halls", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp serializer.Response
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data)
}

func TestCatalogHandler_GetRooms(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setup          func(*MockCatalogService)
		expectedStatus int
	}{
		{
			name: "rooms of a hall",
			url:  "/halls/children/rooms",
			setup: func(svc *MockCatalogService) {
				svc.On("RoomsForHall", service.RoomsForHallInput{Hall: model.HallChildren}).
					Return([]model.ExperienceRoom{{ID: "ch-01", Hall: model.HallChildren}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "age filter passed through",
			url:  "/halls/children/rooms?age_years=6&popular=true",
			setup: func(svc *MockCatalogService) {
				svc.On("RoomsForHall", service.RoomsForHallInput{Hall: model.HallChildren, AgeYears: 6, PopularOnly: true}).
					Return([]model.ExperienceRoom{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "age out of range",
			url:            "/halls/children/rooms?age_years=99",
			setup:          func(svc *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown hall",
			url:  "/halls/atlantis/rooms",
			setup: func(svc *MockCatalogService) {
				svc.On("RoomsForHall", mock.Anything).Return(nil, service.ErrUnknownHall)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCatalogService{}
			tt.setup(mockService)
			router := setupCatalogRouter(NewCatalogHandler(mockService))

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_GetTimetable(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setup          func(*MockCatalogService)
		expectedStatus int
	}{
		{
			name: "timetable",
			url:  "/halls/children/timetable?current_time=10:00&session=1",
			setup: func(svc *MockCatalogService) {
				svc.On("Timetable", service.TimetableInput{Hall: model.HallChildren, CurrentTime: "10:00", Session: 1}).
					Return(&service.TimetableOutput{Hall: model.HallChildren}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing current_time",
			url:            "/halls/children/timetable",
			setup:          func(svc *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "session defaults to one",
			url:  "/halls/children/timetable?current_time=10:00",
			setup: func(svc *MockCatalogService) {
				svc.On("Timetable", service.TimetableInput{Hall: model.HallChildren, CurrentTime: "10:00", Session: 1}).
					Return(&service.TimetableOutput{Hall: model.HallChildren}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "service failure",
			url:  "/halls/children/timetable?current_time=10:00",
			setup: func(svc *MockCatalogService) {
				svc.On("Timetable", mock.Anything).Return(nil, errors.New("catalog unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockCatalogService{}
			tt.setup(mockService)
			router := setupCatalogRouter(NewCatalogHandler(mockService))

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_GetSessions(t *testing.T) {
	mockService := &MockCatalogService{}
	mockService.On("Sessions", "10:00").Return(service.SessionsOutput{})
	router := setupCatalogRouter(NewCatalogHandler(mockService))

	req := httptest.NewRequest("GET", "/sessions?current_time=10:00", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
