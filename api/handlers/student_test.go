package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billycuesta/nurayoga/api/helpers"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	dummydb "github.com/billycuesta/nurayoga/storage/database/dummy"
)

func setupStudentAPI(t *testing.T) (*echo.Echo, student.Repository) {
	db, err := dummydb.Open()
	require.NoError(t, err)

	repo := dummydb.NewStudentRepository(db)
	svc := student.NewService(repo, dummydb.NewEnrollmentRepository(db))

	e := echo.New()
	e.HTTPErrorHandler = helpers.AppHTTPErrorHandler
	RegisterStudentAPI(e.Group("/v1"), svc)
	return e, repo
}

func do(e *echo.Echo, method, path string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStudentAPI_create(t *testing.T) {
	e, _ := setupStudentAPI(t)

	rec := do(e, http.MethodPost, "/v1/students", []byte(`{"name":"Marta","email":"marta@test.test","phone":"612345678"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var std student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
	assert.Equal(t, 1, std.ID)
	assert.Equal(t, "Marta", std.Name)
	assert.NotNil(t, std.Payments)
	assert.False(t, std.EnrolledAt.IsZero())
}

func TestStudentAPI_create_invalid(t *testing.T) {
	e, _ := setupStudentAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "no name", body: `{"email":"marta@test.test"}`},
		{name: "bad email", body: `{"name":"Marta","email":"nope"}`},
		{name: "bad phone", body: `{"name":"Marta","phone":"123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/v1/students", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestStudentAPI_retrieve(t *testing.T) {
	e, repo := setupStudentAPI(t)

	std, err := repo.CreateStudent(student.Student{Name: "Marta"})
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/v1/students/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var got student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, std.ID, got.ID)
	assert.Equal(t, "Marta", got.Name)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/v1/students/99").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/v1/students/lol").Code)
}

func TestStudentAPI_query(t *testing.T) {
	e, repo := setupStudentAPI(t)

	for _, name := range []string{"Marta", "Joan"} {
		_, err := repo.CreateStudent(student.Student{Name: name})
		require.NoError(t, err)
	}

	rec := do(e, http.MethodGet, "/v1/students")
	require.Equal(t, http.StatusOK, rec.Code)

	var students []student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	assert.Len(t, students, 2)
}

func TestStudentAPI_update(t *testing.T) {
	e, repo := setupStudentAPI(t)

	_, err := repo.CreateStudent(student.Student{Name: "Marta", Email: "marta@test.test"})
	require.NoError(t, err)

	rec := do(e, http.MethodPut, "/v1/students/1", []byte(`{"name":"Marta Puig"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var std student.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
	assert.Equal(t, "Marta Puig", std.Name)
	// omitted fields keep their values
	assert.Equal(t, "marta@test.test", std.Email)
}

func TestStudentAPI_destroy(t *testing.T) {
	e, repo := setupStudentAPI(t)

	_, err := repo.CreateStudent(student.Student{Name: "Marta"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/v1/students/1").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/v1/students/1").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/v1/students/1").Code)
}

func TestStudentAPI_enrollments(t *testing.T) {
	e, repo := setupStudentAPI(t)

	_, err := repo.CreateStudent(student.Student{Name: "Marta"})
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/v1/students/1/enrollments")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		OneOff    []enrollment.Enrollment `json:"oneOff"`
		Recurring []enrollment.Enrollment `json:"recurring"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Empty(t, payload.OneOff)
	assert.Empty(t, payload.Recurring)
}
