// Package storetest holds behaviour checks shared by every store.SchoolStore implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
)

// Run checks a store against an empty schema. newStore must return a fresh store on every call.
func Run(t *testing.T, newStore func(t *testing.T) store.SchoolStore) {
	t.Run("students", func(t *testing.T) { testStudents(t, newStore(t)) })
	t.Run("teachers", func(t *testing.T) { testTeachers(t, newStore(t)) })
	t.Run("courses", func(t *testing.T) { testCourses(t, newStore(t)) })
}

func date(y int, m time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func testStudents(t *testing.T, s store.SchoolStore) {
	ctx := context.Background()

	ann := models.Student{FirstName: "Ann", LastName: "Lee", Number: "S100", EnrolDate: date(2024, 9, 2)}
	bob := models.Student{FirstName: "Bob", LastName: "Annesley", Number: "S101", EnrolDate: date(2023, 9, 4)}
	cid := models.Student{FirstName: "Cid", LastName: "Moss", Number: "S102", EnrolDate: date(2022, 1, 10)}

	for _, st := range []*models.Student{&ann, &bob, &cid} {
		id, err := s.AddStudent(ctx, st)
		require.NoError(t, err)
		require.NotZero(t, id)
		st.ID = id
	}

	t.Run("find returns inserted fields", func(t *testing.T) {
		got, err := s.FindStudent(ctx, ann.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, ann, *got)
		assert.Equal(t, "Ann Lee", got.FullName())
	})

	t.Run("find unknown id", func(t *testing.T) {
		got, err := s.FindStudent(ctx, cid.ID+1000)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("list without key returns every row", func(t *testing.T) {
		got, err := s.ListStudents(ctx, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Student{ann, bob, cid}, got)
	})

	t.Run("list matches any name part case-insensitively", func(t *testing.T) {
		got, err := s.ListStudents(ctx, "ANN")
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Student{ann, bob}, got)
	})

	t.Run("list matches composed full name", func(t *testing.T) {
		got, err := s.ListStudents(ctx, "n l")
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Student{ann}, got)
	})

	t.Run("list with no match is empty", func(t *testing.T) {
		got, err := s.ListStudents(ctx, "zzz")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		affected, err := s.DeleteStudent(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		_, err = s.FindStudent(ctx, bob.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		affected, err = s.DeleteStudent(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)
	})
}

func testTeachers(t *testing.T, s store.SchoolStore) {
	ctx := context.Background()

	john := models.Teacher{FirstName: "John", LastName: "Smith", EmployeeNumber: "T378", HireDate: date(2016, 8, 5)}
	jane := models.Teacher{FirstName: "Jane", LastName: "Doe", EmployeeNumber: "T381", HireDate: date(2014, 6, 10)}
	asa := models.Teacher{FirstName: "Åsa", LastName: "Öberg", EmployeeNumber: "T390", HireDate: date(2020, 2, 3)}

	for _, tc := range []*models.Teacher{&john, &jane, &asa} {
		id, err := s.AddTeacher(ctx, tc)
		require.NoError(t, err)
		tc.ID = id
	}

	t.Run("find returns inserted fields", func(t *testing.T) {
		got, err := s.FindTeacher(ctx, jane.ID)
		require.NoError(t, err)
		assert.Equal(t, jane, *got)
	})

	t.Run("search by substring", func(t *testing.T) {
		got, err := s.ListTeachers(ctx, "sm")
		require.NoError(t, err)
		assert.Equal(t, []models.Teacher{john}, got)
	})

	t.Run("search across first and last name", func(t *testing.T) {
		got, err := s.ListTeachers(ctx, "n sMi")
		require.NoError(t, err)
		assert.Equal(t, []models.Teacher{john}, got)
	})

	t.Run("search folds non-ASCII case", func(t *testing.T) {
		for _, key := range []string{"åsa", "ÅSA", "öBERG", "a ö"} {
			got, err := s.ListTeachers(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []models.Teacher{asa}, got, "key %q", key)
		}
	})

	t.Run("wildcards in key match literally", func(t *testing.T) {
		for _, key := range []string{"_", "%", `\`, "J_hn"} {
			got, err := s.ListTeachers(ctx, key)
			require.NoError(t, err)
			assert.Empty(t, got, "key %q", key)
		}
	})

	t.Run("list without key", func(t *testing.T) {
		got, err := s.ListTeachers(ctx, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Teacher{john, jane, asa}, got)
	})

	t.Run("delete then find", func(t *testing.T) {
		affected, err := s.DeleteTeacher(ctx, john.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		got, err := s.FindTeacher(ctx, john.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Nil(t, got)
	})
}

func testCourses(t *testing.T, s store.SchoolStore) {
	ctx := context.Background()

	web := models.Course{
		Code:       "http5101",
		TeacherID:  1,
		Name:       "Web Application Development",
		StartDate:  date(2018, 9, 4),
		FinishDate: date(2018, 12, 14),
	}
	db := models.Course{
		Code:      "http5102",
		TeacherID: 999, // no such teacher, not checked
		Name:      "Project Management",
		StartDate: date(2019, 1, 8),
	}

	for _, c := range []*models.Course{&web, &db} {
		id, err := s.AddCourse(ctx, c)
		require.NoError(t, err)
		c.ID = id
	}

	t.Run("find returns inserted fields", func(t *testing.T) {
		got, err := s.FindCourse(ctx, web.ID)
		require.NoError(t, err)
		assert.Equal(t, web, *got)
	})

	t.Run("missing finish date stays empty", func(t *testing.T) {
		got, err := s.FindCourse(ctx, db.ID)
		require.NoError(t, err)
		assert.True(t, got.FinishDate.IsZero())
		assert.EqualValues(t, 999, got.TeacherID)
	})

	t.Run("search on course name", func(t *testing.T) {
		got, err := s.ListCourses(ctx, "web app")
		require.NoError(t, err)
		assert.Equal(t, []models.Course{web}, got)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		affected, err := s.DeleteCourse(ctx, db.ID+1000)
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)
	})
}
