package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/models"
)

var courseColumns = []string{"courseid", "coursecode", "teacherid", "coursename", "startdate", "finishdate"}

func (s *BaseStore) FindCourse(ctx context.Context, id int64) (*models.Course, error) {
	q := s.Builder.Select(courseColumns...).
		From("courses").
		Where(sq.Eq{"courseid": id})

	course, err := findOne[models.Course](ctx, s, q)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find course %d: %w", id, err)
	}
	return course, nil
}

func (s *BaseStore) ListCourses(ctx context.Context, searchKey string) ([]models.Course, error) {
	q := s.Builder.Select(courseColumns...).From("courses")
	if searchKey != "" {
		logger.Debug.Printf("SearchKey: %s", searchKey)
		q = q.Where(searchAny(searchKey, "coursename"))
	}

	courses, err := findAll[models.Course](ctx, s, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *BaseStore) AddCourse(ctx context.Context, course *models.Course) (int64, error) {
	q := s.Builder.Insert("courses").
		Columns("coursecode", "teacherid", "coursename", "startdate", "finishdate").
		Values(course.Code, course.TeacherID, course.Name, course.StartDate, course.FinishDate)

	id, err := s.insert(ctx, q, "courseid")
	if err != nil {
		return 0, fmt.Errorf("failed to add course: %w", err)
	}
	return id, nil
}

func (s *BaseStore) DeleteCourse(ctx context.Context, id int64) (int64, error) {
	affected, err := s.delete(ctx, s.Builder.Delete("courses").Where(sq.Eq{"courseid": id}))
	if err != nil {
		return 0, fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	return affected, nil
}
