package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"buslink/internal/auth"
	"buslink/internal/errors"
	"buslink/internal/model"
	"buslink/internal/service"
)

// MockCompanyService is a mock implementation of CompanyService.
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetProfile(ctx context.Context, userID string) (*model.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyService) SaveProfile(ctx context.Context, userID string, update service.ProfileUpdate) (*model.Company, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

func newTestEcho() *echo.Echo {
	e := echo.New()
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	e.Validator = &testValidator{v: v}
	return e
}

// callAs runs the handler behind the pass-through authenticator, the same
// wiring the router uses in dev mode.
func callAs(t *testing.T, e *echo.Echo, userID string, h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	wrapped := auth.NewStaticAuthenticator(userID).Middleware()(h)
	require.NoError(t, wrapped(c))
	return rec
}

func TestCompanyHandler_GetProfile_NoCompanyReturnsNull(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)
	mockSvc.On("GetProfile", mock.Anything, "user-1").Return(nil, nil)

	h := NewCompanyHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/companies/profile", nil)
	rec := callAs(t, e, "user-1", h.GetProfile, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "null", rec.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_GetProfile_ReturnsCompany(t *testing.T) {
	e := newTestEcho()
	company := &model.Company{ID: uuid.New(), UserID: "user-1", Name: "Transport Express CI", City: "Abidjan"}
	mockSvc := new(MockCompanyService)
	mockSvc.On("GetProfile", mock.Anything, "user-1").Return(company, nil)

	h := NewCompanyHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/companies/profile", nil)
	rec := callAs(t, e, "user-1", h.GetProfile, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, company.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Transport Express CI", got.Name)
}

func TestCompanyHandler_GetProfile_StoreError(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)
	mockSvc.On("GetProfile", mock.Anything, "user-1").Return(nil, assert.AnError)

	h := NewCompanyHandler(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/companies/profile", nil)
	rec := callAs(t, e, "user-1", h.GetProfile, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch company profile", body.Message)
	assert.Empty(t, body.Errors)
}

func patchProfile(t *testing.T, e *echo.Echo, userID, body string, h *CompanyHandler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/companies/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return callAs(t, e, userID, h.UpdateProfile, req)
}

func TestCompanyHandler_UpdateProfile_CreatesForCaller(t *testing.T) {
	e := newTestEcho()
	saved := &model.Company{ID: uuid.New(), UserID: "user-1", Name: "Transport Express CI", City: "Abidjan"}

	mockSvc := new(MockCompanyService)
	mockSvc.On("SaveProfile", mock.Anything, "user-1", mock.MatchedBy(func(u service.ProfileUpdate) bool {
		return u.Name != nil && *u.Name == "Transport Express CI" &&
			u.City != nil && *u.City == "Abidjan" &&
			u.Phone == nil && u.Address == nil && u.Description == nil && u.LogoURL == nil
	})).Return(saved, nil)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", `{"name":"Transport Express CI","city":"Abidjan"}`, h)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_UpdateProfile_EmptyNamePermitted(t *testing.T) {
	e := newTestEcho()
	saved := &model.Company{ID: uuid.New(), UserID: "user-1"}

	mockSvc := new(MockCompanyService)
	mockSvc.On("SaveProfile", mock.Anything, "user-1", mock.MatchedBy(func(u service.ProfileUpdate) bool {
		return u.Name != nil && *u.Name == ""
	})).Return(saved, nil)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", `{"name":""}`, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_UpdateProfile_UnknownAndServerFieldsDropped(t *testing.T) {
	e := newTestEcho()
	saved := &model.Company{ID: uuid.New(), UserID: "user-1", Name: "X"}

	mockSvc := new(MockCompanyService)
	// The owner comes from the auth context; a client-sent userId or any
	// unknown field never reaches the service.
	mockSvc.On("SaveProfile", mock.Anything, "user-1", mock.MatchedBy(func(u service.ProfileUpdate) bool {
		return u.Name != nil && *u.Name == "X" &&
			u.Phone == nil && u.Address == nil && u.City == nil && u.Description == nil && u.LogoURL == nil
	})).Return(saved, nil)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", `{"name":"X","userId":"evil","id":"evil","extra":42}`, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_UpdateProfile_WrongTypeRejectedPerField(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", `{"name":123}`, h)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid data", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)

	mockSvc.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompanyHandler_UpdateProfile_EnumeratesEveryFailingField(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)

	payload, err := json.Marshal(map[string]string{
		"phone": strings.Repeat("9", 51),
		"city":  strings.Repeat("A", 101),
	})
	require.NoError(t, err)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", string(payload), h)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)

	fields := []string{body.Errors[0].Field, body.Errors[1].Field}
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "city")

	mockSvc.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompanyHandler_UpdateProfile_StoreError(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)
	mockSvc.On("SaveProfile", mock.Anything, "user-1", mock.Anything).Return(nil, assert.AnError)

	h := NewCompanyHandler(mockSvc)
	rec := patchProfile(t, e, "user-1", `{"name":"X"}`, h)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to update company profile", body.Message)
}

func TestCompanyHandler_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	mockSvc := new(MockCompanyService)
	h := NewCompanyHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/companies/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// No authenticator ran, so the handler short-circuits before any store
	// access.
	err := h.GetProfile(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	mockSvc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}
