package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/service"
)

// MockPreferenceService is a mock implementation of PreferenceService
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Get(ctx context.Context, visitorID string) (*model.VisitorPreferences, error) {
	args := m.Called(ctx, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VisitorPreferences), args.Error(1)
}

func (m *MockPreferenceService) Put(ctx context.Context, visitorID string, prefs *model.VisitorPreferences) (*model.VisitorPreferences, error) {
	args := m.Called(ctx, visitorID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VisitorPreferences), args.Error(1)
}

func (m *MockPreferenceService) Delete(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}

func setupPreferenceRouter(h *PreferenceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/visitors/:visitor_id/preferences", h.GetPreferences)
	r.PUT("/visitors/:visitor_id/preferences", h.PutPreferences)
	r.DELETE("/visitors/:visitor_id/preferences", h.DeletePreferences)
	return r
}

func TestPreferenceHandler_GetPreferences(t *testing.T) {
	mockService := &MockPreferenceService{}
	defaults := model.DefaultVisitorPreferences()
	mockService.On("Get", mock.Anything, "visitor-1").Return(&defaults, nil)
	router := setupPreferenceRouter(NewPreferenceHandler(mockService))

	req := httptest.NewRequest("GET", "/visitors/visitor-1/preferences", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestPreferenceHandler_PutPreferences(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    PutPreferencesReq
		setup          func(*MockPreferenceService)
		expectedStatus int
	}{
		{
			name:        "saved",
			requestBody: PutPreferencesReq{Hall: "children", Session: 1, ChildAgeYears: 7},
			setup: func(svc *MockPreferenceService) {
				svc.On("Put", mock.Anything, "visitor-1", mock.AnythingOfType("*model.VisitorPreferences")).
					Return(&model.VisitorPreferences{Hall: model.HallChildren, Session: 1}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing hall",
			requestBody:    PutPreferencesReq{Session: 1},
			setup:          func(svc *MockPreferenceService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown hall",
			requestBody: PutPreferencesReq{Hall: "atlantis", Session: 1},
			setup: func(svc *MockPreferenceService) {
				svc.On("Put", mock.Anything, "visitor-1", mock.AnythingOfType("*model.VisitorPreferences")).
					Return(nil, service.ErrUnknownHall)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPreferenceService{}
			tt.setup(mockService)
			router := setupPreferenceRouter(NewPreferenceHandler(mockService))

			body, _ := sonic.Marshal(tt.requestBody)
			req := httptest.NewRequest("PUT", "/visitors/visitor-1/preferences", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPreferenceHandler_DeletePreferences(t *testing.T) {
	mockService := &MockPreferenceService{}
	mockService.On("Delete", mock.Anything, "visitor-1").Return(nil)
	router := setupPreferenceRouter(NewPreferenceHandler(mockService))

	req := httptest.NewRequest("DELETE", "/visitors/visitor-1/preferences", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
