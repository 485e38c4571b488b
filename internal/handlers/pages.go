package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
	"github.com/shrimpsizemoose/skola/internal/views"
)

type entityAPI[T any] interface {
	Find(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, searchKey string) ([]T, error)
	Add(ctx context.Context, record *T) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Pages is the server-rendered side of one entity. Every action makes exactly
// one call to the entity's API controller and then renders or redirects.
type Pages[T any] struct {
	entity string
	api    entityAPI[T]
	views  *views.Renderer
	fields []string
	decode func(form url.Values) (*T, error)
}

func NewStudentPages(api *StudentAPI, renderer *views.Renderer) *Pages[models.Student] {
	return &Pages[models.Student]{
		entity: "Student",
		api:    api,
		views:  renderer,
		fields: []string{"first_name", "last_name", "student_number", "enrol_date"},
		decode: decodeStudentForm,
	}
}

func NewTeacherPages(api *TeacherAPI, renderer *views.Renderer) *Pages[models.Teacher] {
	return &Pages[models.Teacher]{
		entity: "Teacher",
		api:    api,
		views:  renderer,
		fields: []string{"first_name", "last_name", "employee_number", "hire_date"},
		decode: decodeTeacherForm,
	}
}

func NewCoursePages(api *CourseAPI, renderer *views.Renderer) *Pages[models.Course] {
	return &Pages[models.Course]{
		entity: "Course",
		api:    api,
		views:  renderer,
		fields: []string{"course_code", "name", "teacher_id", "start_date", "finish_date"},
		decode: decodeCourseForm,
	}
}

func (p *Pages[T]) prefix() string {
	return "/" + p.entity + "Page"
}

func (p *Pages[T]) view(page string) string {
	return strings.ToLower(p.entity) + "/" + page
}

func (p *Pages[T]) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+p.prefix()+"/List", p.List)
	mux.HandleFunc("GET "+p.prefix()+"/Show/{id}", p.Show)
	mux.HandleFunc("GET "+p.prefix()+"/New", p.New)
	mux.HandleFunc("POST "+p.prefix()+"/Create", p.Create)
	mux.HandleFunc("GET "+p.prefix()+"/DeleteConfirm/{id}", p.DeleteConfirm)
	mux.HandleFunc("POST "+p.prefix()+"/Delete/{id}", p.Delete)
}

func (p *Pages[T]) render(w http.ResponseWriter, status int, page string, data views.Page) {
	if err := p.views.Render(w, status, p.view(page), data); err != nil {
		logger.Error.Printf("Failed to render %s: %v", p.view(page), err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (p *Pages[T]) List(w http.ResponseWriter, r *http.Request) {
	searchKey := r.URL.Query().Get("SearchKey")
	records, err := p.api.List(r.Context(), searchKey)
	if err != nil {
		logger.Error.Printf("Failed to list %s records: %v", p.entity, err)
		http.Error(w, "Failed to fetch records", http.StatusInternalServerError)
		return
	}

	p.render(w, http.StatusOK, "list", views.Page{
		Title:     p.entity + "s",
		SearchKey: searchKey,
		Records:   records,
	})
}

func (p *Pages[T]) Show(w http.ResponseWriter, r *http.Request) {
	p.showRecord(w, r, "show")
}

func (p *Pages[T]) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	p.showRecord(w, r, "delete_confirm")
}

func (p *Pages[T]) showRecord(w http.ResponseWriter, r *http.Request, page string) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := p.api.Find(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		p.render(w, http.StatusNotFound, page, views.Page{Title: p.entity + " not found"})
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to find %s %d: %v", p.entity, id, err)
		http.Error(w, "Failed to fetch record", http.StatusInternalServerError)
		return
	}

	p.render(w, http.StatusOK, page, views.Page{Title: p.entity, Record: record})
}

func (p *Pages[T]) New(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "new", views.Page{Title: "New " + strings.ToLower(p.entity)})
}

func (p *Pages[T]) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		form[f] = r.PostForm.Get(f)
	}
	retry := func(status int, err error) {
		p.render(w, status, "new", views.Page{
			Title: "New " + strings.ToLower(p.entity),
			Form:  form,
			Error: err.Error(),
		})
	}

	record, err := p.decode(r.PostForm)
	if err != nil {
		retry(http.StatusBadRequest, err)
		return
	}

	id, err := p.api.Add(r.Context(), record)
	if errors.Is(err, ErrInvalidRecord) {
		retry(http.StatusBadRequest, err)
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to add %s: %v", p.entity, err)
		retry(http.StatusInternalServerError, fmt.Errorf("could not save %s", strings.ToLower(p.entity)))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/Show/%d", p.prefix(), id), http.StatusSeeOther)
}

func (p *Pages[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := p.api.Delete(r.Context(), id)
	if err != nil {
		logger.Error.Printf("Failed to delete %s %d: %v", p.entity, id, err)
		http.Error(w, "Failed to delete record", http.StatusInternalServerError)
		return
	}
	logger.Debug.Printf("Deleted %s %d, rows affected: %d", p.entity, id, affected)

	http.Redirect(w, r, p.prefix()+"/List", http.StatusSeeOther)
}

func formDate(form url.Values, field string) (models.Date, error) {
	d, err := models.ParseDate(form.Get(field))
	if err != nil {
		return models.Date{}, invalid(fmt.Errorf("%s: %w", field, err))
	}
	return d, nil
}

func decodeStudentForm(form url.Values) (*models.Student, error) {
	enrolDate, err := formDate(form, "enrol_date")
	if err != nil {
		return nil, err
	}
	return &models.Student{
		FirstName: strings.TrimSpace(form.Get("first_name")),
		LastName:  strings.TrimSpace(form.Get("last_name")),
		Number:    strings.TrimSpace(form.Get("student_number")),
		EnrolDate: enrolDate,
	}, nil
}

func decodeTeacherForm(form url.Values) (*models.Teacher, error) {
	hireDate, err := formDate(form, "hire_date")
	if err != nil {
		return nil, err
	}
	return &models.Teacher{
		FirstName:      strings.TrimSpace(form.Get("first_name")),
		LastName:       strings.TrimSpace(form.Get("last_name")),
		EmployeeNumber: strings.TrimSpace(form.Get("employee_number")),
		HireDate:       hireDate,
	}, nil
}

func decodeCourseForm(form url.Values) (*models.Course, error) {
	var teacherID int64
	if raw := strings.TrimSpace(form.Get("teacher_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalid(fmt.Errorf("teacher_id: %q is not a number", raw))
		}
		teacherID = id
	}
	startDate, err := formDate(form, "start_date")
	if err != nil {
		return nil, err
	}
	finishDate, err := formDate(form, "finish_date")
	if err != nil {
		return nil, err
	}
	return &models.Course{
		Code:       strings.TrimSpace(form.Get("course_code")),
		TeacherID:  teacherID,
		Name:       strings.TrimSpace(form.Get("name")),
		StartDate:  startDate,
		FinishDate: finishDate,
	}, nil
}
