package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/models"
)

var studentColumns = []string{"studentid", "studentfname", "studentlname", "studentnumber", "enroldate"}

func (s *BaseStore) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	q := s.Builder.Select(studentColumns...).
		From("students").
		Where(sq.Eq{"studentid": id})

	student, err := findOne[models.Student](ctx, s, q)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find student %d: %w", id, err)
	}
	return student, nil
}

// ListStudents matches searchKey against first name, last name and "first last".
func (s *BaseStore) ListStudents(ctx context.Context, searchKey string) ([]models.Student, error) {
	q := s.Builder.Select(studentColumns...).From("students")
	if searchKey != "" {
		logger.Debug.Printf("SearchKey: %s", searchKey)
		q = q.Where(searchAny(searchKey,
			"studentfname",
			"studentlname",
			"studentfname || ' ' || studentlname",
		))
	}

	students, err := findAll[models.Student](ctx, s, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *BaseStore) AddStudent(ctx context.Context, student *models.Student) (int64, error) {
	q := s.Builder.Insert("students").
		Columns("studentfname", "studentlname", "studentnumber", "enroldate").
		Values(student.FirstName, student.LastName, student.Number, student.EnrolDate)

	id, err := s.insert(ctx, q, "studentid")
	if err != nil {
		return 0, fmt.Errorf("failed to add student: %w", err)
	}
	return id, nil
}

func (s *BaseStore) DeleteStudent(ctx context.Context, id int64) (int64, error) {
	affected, err := s.delete(ctx, s.Builder.Delete("students").Where(sq.Eq{"studentid": id}))
	if err != nil {
		return 0, fmt.Errorf("failed to delete student %d: %w", id, err)
	}
	return affected, nil
}
