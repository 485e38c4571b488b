package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shrimpsizemoose/skola/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) ApplyMigrations(dir string) error {
	return nil
}

func (m *MockStore) FindCourse(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockStore) ListCourses(ctx context.Context, searchKey string) ([]models.Course, error) {
	args := m.Called(ctx, searchKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockStore) AddCourse(ctx context.Context, course *models.Course) (int64, error) {
	args := m.Called(ctx, course)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteCourse(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStore) ListStudents(ctx context.Context, searchKey string) ([]models.Student, error) {
	args := m.Called(ctx, searchKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStore) AddStudent(ctx context.Context, student *models.Student) (int64, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteStudent(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FindTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockStore) ListTeachers(ctx context.Context, searchKey string) ([]models.Teacher, error) {
	args := m.Called(ctx, searchKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Teacher), args.Error(1)
}

func (m *MockStore) AddTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	args := m.Called(ctx, teacher)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteTeacher(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
