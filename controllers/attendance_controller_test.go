package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/attendly/attendance-api/models"
	"github.com/attendly/attendance-api/repos"
)

type MockAttendanceRepo struct {
	mock.Mock
}

func (m *MockAttendanceRepo) Create(record *models.Attendance) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockAttendanceRepo) List() ([]models.Attendance, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

func (m *MockAttendanceRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestRouter(repo repos.AttendanceRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewAttendanceController(repo)
	r := gin.New()
	r.GET("/api/attendance", c.ListRecords)
	r.POST("/api/attendance", c.CreateRecord)
	r.DELETE("/api/attendance/:id", c.DeleteRecord)
	return r
}

func doJSON(r *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func TestCreateRecord(t *testing.T) {
	t.Run("should trim fields and echo the generated id", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Create", mock.MatchedBy(func(rec *models.Attendance) bool {
			return rec.EmployeeName == "Alice Smith" &&
				rec.EmployeeID == "E1" &&
				rec.Date.String() == "2024-03-01" &&
				rec.Status == models.StatusPresent
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Attendance).ID = 7
		}).Return(nil)

		w, body := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"Alice Smith ","employeeID":" E1 ","date":"2024-03-01","status":"Present"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(7), body["id"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Alice Smith", data["employeeName"])
		assert.Equal(t, "E1", data["employeeID"])
		assert.Equal(t, "2024-03-01", data["date"])
		repo.AssertExpectations(t)
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		w, body := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"Alice","date":"2024-03-01","status":"Present"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("should reject whitespace-only names", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		w, _ := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"   ","employeeID":"E1","date":"2024-03-01","status":"Present"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("should reject status values that are not exactly Present or Absent", func(t *testing.T) {
		for _, status := range []string{"present", "ABSENT", "Late", "Present ", ""} {
			repo := new(MockAttendanceRepo)
			payload, _ := json.Marshal(map[string]string{
				"employeeName": "Alice",
				"employeeID":   "E1",
				"date":         "2024-03-01",
				"status":       status,
			})
			w, _ := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance", payload)

			assert.Equal(t, http.StatusBadRequest, w.Code, "status %q", status)
			repo.AssertNotCalled(t, "Create", mock.Anything)
		}
	})

	t.Run("should reject dates outside the YYYY-MM-DD form", func(t *testing.T) {
		for _, date := range []string{"01/02/2024", "2024-3-01", "2024-03-1", "20240301", "2024-03-01T00:00:00Z", "yesterday"} {
			repo := new(MockAttendanceRepo)
			payload, _ := json.Marshal(map[string]string{
				"employeeName": "Alice",
				"employeeID":   "E1",
				"date":         date,
				"status":       "Absent",
			})
			w, _ := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance", payload)

			assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", date)
			repo.AssertNotCalled(t, "Create", mock.Anything)
		}
	})

	t.Run("should reject lexically valid but impossible dates", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		w, _ := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"Alice","employeeID":"E1","date":"2024-13-41","status":"Present"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("should translate duplicate key violations to 400", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Create", mock.Anything).Return(repos.ErrDuplicate)

		w, body := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"Alice","employeeID":"E1","date":"2024-03-01","status":"Present"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Duplicate entry found", body["error"])
	})

	t.Run("should surface store failures as 500 with details", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Create", mock.Anything).Return(errors.New("connection refused"))

		w, body := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance",
			[]byte(`{"employeeName":"Alice","employeeID":"E1","date":"2024-03-01","status":"Present"}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "connection refused", body["details"])
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		w, _ := doJSON(newTestRouter(repo), http.MethodPost, "/api/attendance", []byte(`{not json`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestListRecords(t *testing.T) {
	t.Run("should return records with a count", func(t *testing.T) {
		date1, _ := models.ParseDate("2024-03-02")
		date2, _ := models.ParseDate("2024-03-01")
		repo := new(MockAttendanceRepo)
		repo.On("List").Return([]models.Attendance{
			{ID: 2, EmployeeName: "Bob", EmployeeID: "E2", Date: date1, Status: models.StatusAbsent},
			{ID: 1, EmployeeName: "Alice", EmployeeID: "E1", Date: date2, Status: models.StatusPresent},
		}, nil)

		w, body := doJSON(newTestRouter(repo), http.MethodGet, "/api/attendance", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(2), body["count"])

		data := body["data"].([]interface{})
		assert.Len(t, data, 2)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "2024-03-02", first["date"])
	})

	t.Run("should return an empty array when there are no rows", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("List").Return([]models.Attendance{}, nil)

		w, body := doJSON(newTestRouter(repo), http.MethodGet, "/api/attendance", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), body["count"])
		assert.NotNil(t, body["data"])
		assert.Len(t, body["data"].([]interface{}), 0)
	})

	t.Run("should surface store failures as 500", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("List").Return(nil, errors.New("timeout"))

		w, body := doJSON(newTestRouter(repo), http.MethodGet, "/api/attendance", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "timeout", body["details"])
	})

	t.Run("should report an uninitialized store as 500", func(t *testing.T) {
		w, body := doJSON(newTestRouter(nil), http.MethodGet, "/api/attendance", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Database connection not established", body["error"])
	})
}

func TestDeleteRecord(t *testing.T) {
	t.Run("should delete an existing record", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Delete", uint(12)).Return(nil)

		w, body := doJSON(newTestRouter(repo), http.MethodDelete, "/api/attendance/12", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		repo.AssertExpectations(t)
	})

	t.Run("should reject a non-numeric id", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		w, _ := doJSON(newTestRouter(repo), http.MethodDelete, "/api/attendance/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("should return 404 when no row matches", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Delete", uint(999999)).Return(repos.ErrNotFound)

		w, body := doJSON(newTestRouter(repo), http.MethodDelete, "/api/attendance/999999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Record not found", body["error"])
	})

	t.Run("should surface store failures as 500", func(t *testing.T) {
		repo := new(MockAttendanceRepo)
		repo.On("Delete", uint(3)).Return(errors.New("lock wait timeout"))

		w, body := doJSON(newTestRouter(repo), http.MethodDelete, "/api/attendance/3", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "lock wait timeout", body["details"])
	})
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", HealthCheck)

	w, body := doJSON(r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPIInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api", APIInfo)

	w, body := doJSON(r, http.MethodGet, "/api", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ServiceVersion, body["version"])
	assert.Equal(t, "attendance-api", body["name"])
}
