package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/models"
)

var teacherColumns = []string{"teacherid", "teacherfname", "teacherlname", "employeenumber", "hiredate"}

func (s *BaseStore) FindTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	q := s.Builder.Select(teacherColumns...).
		From("teachers").
		Where(sq.Eq{"teacherid": id})

	teacher, err := findOne[models.Teacher](ctx, s, q)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find teacher %d: %w", id, err)
	}
	return teacher, nil
}

// ListTeachers matches searchKey against first name, last name and "first last".
func (s *BaseStore) ListTeachers(ctx context.Context, searchKey string) ([]models.Teacher, error) {
	q := s.Builder.Select(teacherColumns...).From("teachers")
	if searchKey != "" {
		logger.Debug.Printf("SearchKey: %s", searchKey)
		q = q.Where(searchAny(searchKey,
			"teacherfname",
			"teacherlname",
			"teacherfname || ' ' || teacherlname",
		))
	}

	teachers, err := findAll[models.Teacher](ctx, s, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (s *BaseStore) AddTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	q := s.Builder.Insert("teachers").
		Columns("teacherfname", "teacherlname", "employeenumber", "hiredate").
		Values(teacher.FirstName, teacher.LastName, teacher.EmployeeNumber, teacher.HireDate)

	id, err := s.insert(ctx, q, "teacherid")
	if err != nil {
		return 0, fmt.Errorf("failed to add teacher: %w", err)
	}
	return id, nil
}

func (s *BaseStore) DeleteTeacher(ctx context.Context, id int64) (int64, error) {
	affected, err := s.delete(ctx, s.Builder.Delete("teachers").Where(sq.Eq{"teacherid": id}))
	if err != nil {
		return 0, fmt.Errorf("failed to delete teacher %d: %w", id, err)
	}
	return affected, nil
}
