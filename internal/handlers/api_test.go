package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/skola/internal/metrics"
	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
	"github.com/shrimpsizemoose/skola/internal/views"
)

func newTestRouter(t *testing.T) (http.Handler, *MockStore) {
	renderer, err := views.New("2 Jan 2006")
	require.NoError(t, err)

	s := new(MockStore)
	t.Cleanup(func() { s.AssertExpectations(t) })
	return NewRouter(s, renderer), s
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFindStudent(t *testing.T) {
	router, s := newTestRouter(t)

	ann := &models.Student{
		ID:        7,
		FirstName: "Ann",
		LastName:  "Lee",
		Number:    "S100",
		EnrolDate: models.NewDate(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)),
	}
	s.On("FindStudent", mock.Anything, int64(7)).Return(ann, nil)
	s.On("FindStudent", mock.Anything, int64(8)).Return(nil, store.ErrNotFound)

	t.Run("found", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Student/FindStudent/7", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.EqualValues(t, 7, got["id"])
		assert.Equal(t, "Ann Lee", got["name"])
		assert.Equal(t, "Ann", got["first_name"])
		assert.Equal(t, "S100", got["student_number"])
		assert.Equal(t, "2024-09-02", got["enrol_date"])
	})

	t.Run("absent is null with 404", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Student/FindStudent/8", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, "null", rec.Body.String())
	})

	t.Run("non numeric id", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Student/FindStudent/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTeachers(t *testing.T) {
	router, s := newTestRouter(t)

	john := models.Teacher{ID: 1, FirstName: "John", LastName: "Smith", EmployeeNumber: "T378"}
	s.On("ListTeachers", mock.Anything, "sm").Return([]models.Teacher{john}, nil)
	s.On("ListTeachers", mock.Anything, "").Return([]models.Teacher{}, nil)

	t.Run("search key is forwarded", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Teacher/ListTeachers?SearchKey=sm", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "John Smith", got[0]["name"])
	})

	t.Run("empty table is an empty array", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Teacher/ListTeachers", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestAddStudent(t *testing.T) {
	t.Run("returns generated id and defaults enrol date to today", func(t *testing.T) {
		router, s := newTestRouter(t)
		s.On("AddStudent", mock.Anything, mock.MatchedBy(func(st *models.Student) bool {
			return st.FirstName == "Ann" &&
				st.LastName == "Lee" &&
				st.Number == "S100" &&
				st.EnrolDate == models.Today()
		})).Return(int64(7), nil)

		rec := do(router, http.MethodPost, "/api/Student/AddStudent",
			`{"first_name":"Ann","last_name":"Lee","student_number":"S100"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "7", rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := do(router, http.MethodPost, "/api/Student/AddStudent", `{"first_name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, "0", rec.Body.String())
	})

	t.Run("bad date", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := do(router, http.MethodPost, "/api/Student/AddStudent",
			`{"first_name":"Ann","last_name":"Lee","student_number":"S100","enrol_date":"yesterday"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required field never reaches the store", func(t *testing.T) {
		router, s := newTestRouter(t)
		rec := do(router, http.MethodPost, "/api/Student/AddStudent", `{"first_name":"Ann"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, "0", rec.Body.String())
		s.AssertNotCalled(t, "AddStudent", mock.Anything, mock.Anything)
	})

	t.Run("database failure is distinguishable from an id", func(t *testing.T) {
		router, s := newTestRouter(t)
		s.On("AddStudent", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

		rec := do(router, http.MethodPost, "/api/Student/AddStudent",
			`{"first_name":"Ann","last_name":"Lee","student_number":"S100"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, "0", rec.Body.String())
	})
}

func TestAddTeacher(t *testing.T) {
	t.Run("defaults hire date to today", func(t *testing.T) {
		router, s := newTestRouter(t)
		s.On("AddTeacher", mock.Anything, mock.MatchedBy(func(tc *models.Teacher) bool {
			return tc.FirstName == "John" &&
				tc.LastName == "Smith" &&
				tc.EmployeeNumber == "T378" &&
				tc.HireDate == models.Today()
		})).Return(int64(11), nil)

		rec := do(router, http.MethodPost, "/api/Teacher/AddTeacher",
			`{"first_name":"John","last_name":"Smith","employee_number":"T378"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "11", rec.Body.String())
	})

	t.Run("keeps a given hire date", func(t *testing.T) {
		router, s := newTestRouter(t)
		s.On("AddTeacher", mock.Anything, mock.MatchedBy(func(tc *models.Teacher) bool {
			return tc.HireDate.String() == "2016-08-05"
		})).Return(int64(12), nil)

		rec := do(router, http.MethodPost, "/api/Teacher/AddTeacher",
			`{"first_name":"John","last_name":"Smith","employee_number":"T378","hire_date":"2016-08-05"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "12", rec.Body.String())
	})
}

func TestMutationCounters(t *testing.T) {
	added := metrics.RecordMutationsTotal.WithLabelValues("teacher", "add")
	failed := metrics.StoreErrorsTotal.WithLabelValues("teacher", "add")
	addedBefore := testutil.ToFloat64(added)
	failedBefore := testutil.ToFloat64(failed)

	router, s := newTestRouter(t)
	s.On("AddTeacher", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	s.On("AddTeacher", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full")).Once()

	body := `{"first_name":"John","last_name":"Smith","employee_number":"T378"}`
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/Teacher/AddTeacher", body).Code)
	require.Equal(t, http.StatusInternalServerError, do(router, http.MethodPost, "/api/Teacher/AddTeacher", body).Code)
	// rejected before the store, counts as neither
	require.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/Teacher/AddTeacher", `{}`).Code)

	assert.Equal(t, addedBefore+1, testutil.ToFloat64(added))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestFindCourse(t *testing.T) {
	router, s := newTestRouter(t)

	web := &models.Course{
		ID:        3,
		Code:      "http5101",
		TeacherID: 1,
		Name:      "Web Application Development",
		StartDate: models.NewDate(time.Date(2018, 9, 4, 0, 0, 0, 0, time.UTC)),
	}
	s.On("FindCourse", mock.Anything, int64(3)).Return(web, nil)
	s.On("FindCourse", mock.Anything, int64(4)).Return(nil, store.ErrNotFound)

	t.Run("found", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Course/FindCourse/3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.EqualValues(t, 3, got["id"])
		assert.Equal(t, "http5101", got["course_code"])
		assert.EqualValues(t, 1, got["teacher_id"])
		assert.Equal(t, "Web Application Development", got["name"])
		assert.Equal(t, "2018-09-04", got["start_date"])
		assert.Nil(t, got["finish_date"])
	})

	t.Run("absent is null with 404", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/Course/FindCourse/4", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, "null", rec.Body.String())
	})
}

func TestListCourses(t *testing.T) {
	router, s := newTestRouter(t)

	web := models.Course{ID: 3, Code: "http5101", Name: "Web Application Development"}
	s.On("ListCourses", mock.Anything, "web").Return([]models.Course{web}, nil)

	rec := do(router, http.MethodGet, "/api/Course/ListCourses?SearchKey=web", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "http5101", got[0]["course_code"])
}

func TestAddCourse(t *testing.T) {
	router, s := newTestRouter(t)
	s.On("AddCourse", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return c.Code == "http5101" &&
			c.TeacherID == 999 &&
			c.StartDate.String() == "2018-09-04" &&
			c.FinishDate.String() == "2018-12-14"
	})).Return(int64(3), nil)

	rec := do(router, http.MethodPost, "/api/Course/AddCourse",
		`{"course_code":"http5101","teacher_id":999,"name":"Web Application Development","start_date":"2018-09-04","finish_date":"2018-12-14T00:00:00Z"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "3", rec.Body.String())
}

func TestDeleteTeacher(t *testing.T) {
	router, s := newTestRouter(t)
	s.On("DeleteTeacher", mock.Anything, int64(4)).Return(int64(1), nil)
	s.On("DeleteTeacher", mock.Anything, int64(5)).Return(int64(0), nil)

	rec := do(router, http.MethodDelete, "/api/Teacher/DeleteTeacher/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "1", rec.Body.String())

	rec = do(router, http.MethodDelete, "/api/Teacher/DeleteTeacher/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "0", rec.Body.String())
}

func TestMethodMismatch(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(router, http.MethodGet, "/api/Course/DeleteCourse/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	router, s := newTestRouter(t)
	s.On("Ping", mock.Anything).Return(nil).Once()
	s.On("Ping", mock.Anything).Return(errors.New("down")).Once()

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(router, http.MethodGet, "/healthz", "").Code)
}
