package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiseman/studentrecords/internal/app/controllers"
	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/app/routes"
	"github.com/wiseman/studentrecords/internal/app/services"
	"github.com/wiseman/studentrecords/internal/docstore"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *repositories.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := docstore.NewMemoryStore()
	repos := repositories.NewRepositories(store)
	nop := zerolog.Nop()

	authService := services.NewAuthService(repos.UserRepository, nop)
	moduleService := services.NewModuleService(repos.ModuleRepository)
	enrollmentService := services.NewEnrollmentService(repos.EnrollmentRepository, repos.UserRepository, nop)
	studentService := services.NewStudentService(repos.UserRepository, repos.ModuleRepository, repos.EnrollmentRepository, nop)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(authService, nop),
		controllers.NewModuleController(moduleService),
		controllers.NewEnrollmentController(enrollmentService, studentService, nop),
	)
	return router, repos
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func registerStudent(t *testing.T, router *gin.Engine, username, password string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Username: username,
		Password: password,
		Name:     "Test",
		Surname:  "Student",
		Role:     models.RoleStudent,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFlow(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerStudent(t, router, "s1init", "pw1")

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "s1init", Password: "pw1"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.LoginResponse
		decodeData(t, w, &resp)
		assert.True(t, resp.Authenticated)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "s1init", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ghost", Password: "pw1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "s1init"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerStudent(t, router, "s1init", "pw1")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "s1init",
		Password: "other",
		Name:     "Someone",
		Surname:  "Else",
		Role:     models.RoleStudent,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestModuleEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/modules", dto.CreateModuleRequest{
		Name:     "Software Design",
		Code:     "CS101",
		Semester: 1,
		Lecturer: "Dr. A",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Module
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/modules", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Module
	decodeData(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestEnrollmentLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerStudent(t, router, "s1init", "pw1")

	w := doJSON(t, router, http.MethodPost, "/api/v1/modules", dto.CreateModuleRequest{
		Name:     "Software Design",
		Code:     "CS101",
		Semester: 1,
		Lecturer: "Dr. A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Enroll
	w = doJSON(t, router, http.MethodPost, "/api/v1/students/s1init/enrollments", dto.EnrollRequest{
		ModuleCodes: []string{"CS101"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var enrollResp dto.EnrollResponse
	decodeData(t, w, &enrollResp)
	require.Len(t, enrollResp.Enrollments, 1)
	enrollmentID := enrollResp.Enrollments[0].ID

	// Student detail shows the joined row with zeroed marks
	w = doJSON(t, router, http.MethodGet, "/api/v1/students/s1init", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.StudentDetailResponse
	decodeData(t, w, &detail)
	require.Len(t, detail.EnrolledModules, 1)
	assert.Equal(t, "Dr. A", detail.EnrolledModules[0].Lecturer)
	assert.Zero(t, detail.EnrolledModules[0].FinalMark)

	// Update marks
	sem := 61.5
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/enrollments/%s/marks", enrollmentID), dto.UpdateMarksRequest{
		SemesterMark: &sem,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Enrollment
	decodeData(t, w, &updated)
	assert.Equal(t, 61.5, updated.SemesterMark)

	// Deregister hides the row from the detail view
	w = doJSON(t, router, http.MethodDelete, "/api/v1/enrollments/"+enrollmentID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/students/s1init", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &detail)
	assert.Empty(t, detail.EnrolledModules)
}

func TestEnrollUnknownStudentReturns404(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/students/ghost/enrollments", dto.EnrollRequest{
		ModuleCodes: []string{"CS101"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollEmptyCodesReturns400(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerStudent(t, router, "s1init", "pw1")

	w := doJSON(t, router, http.MethodPost, "/api/v1/students/s1init/enrollments", map[string][]string{
		"moduleCodes": {},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentDetailUnknownReturns404(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/students/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	router, repos := setupTestRouter(t)
	registerStudent(t, router, "s1init", "pw1")

	user, err := repos.UserRepository.GetByUsername(context.Background(), "s1init")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/"+user.ID+"/password", dto.UpdatePasswordRequest{
		NewPassword: "pw2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "s1init", Password: "pw2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "s1init", Password: "pw1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
