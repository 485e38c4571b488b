package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/models"
)

type SchoolStore interface {
	Close() error
	Ping(ctx context.Context) error
	ApplyMigrations(dir string) error

	FindCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, searchKey string) ([]models.Course, error)
	AddCourse(ctx context.Context, course *models.Course) (int64, error)
	DeleteCourse(ctx context.Context, id int64) (int64, error)

	FindStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, searchKey string) ([]models.Student, error)
	AddStudent(ctx context.Context, student *models.Student) (int64, error)
	DeleteStudent(ctx context.Context, id int64) (int64, error)

	FindTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context, searchKey string) ([]models.Teacher, error)
	AddTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	DeleteTeacher(ctx context.Context, id int64) (int64, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB      *sqlx.DB
	Builder sq.StatementBuilderType
	// InsertID executes an INSERT and reports the key the database generated for idColumn.
	InsertID func(ctx context.Context, conn *sqlx.Conn, insert sq.InsertBuilder, idColumn string) (int64, error)
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// conn hands out a dedicated connection; callers release it with Close when the operation ends.
func (s *BaseStore) conn(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := s.DB.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return conn, nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		stmt := string(content)
		if translateSQL != nil {
			stmt = translateSQL(stmt)
		}

		logger.Info.Printf("Applying migration: %s", file.Name())
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchAny matches key as a case-insensitive substring of any of the given column expressions.
// LIKE wildcards in key match literally.
func searchAny(key string, columns ...string) sq.Or {
	pattern := "%" + likeEscaper.Replace(key) + "%"
	clause := sq.Or{}
	for _, col := range columns {
		clause = append(clause, sq.Expr(fmt.Sprintf(`lower(%s) LIKE lower(?) ESCAPE '\'`, col), pattern))
	}
	return clause
}

func findOne[T any](ctx context.Context, s *BaseStore, q sq.SelectBuilder) (*T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var row T
	err = conn.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func findAll[T any](ctx context.Context, s *BaseStore, q sq.SelectBuilder) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	logger.Debug.Println(query)

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows := []T{}
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *BaseStore) insert(ctx context.Context, q sq.InsertBuilder, idColumn string) (int64, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	return s.InsertID(ctx, conn, q, idColumn)
}

func (s *BaseStore) delete(ctx context.Context, q sq.DeleteBuilder) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
