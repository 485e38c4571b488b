package handlers

import (
	"context"
	"net/http"

	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
)

type CourseAPI struct {
	store store.SchoolStore
}

func NewCourseAPI(store store.SchoolStore) *CourseAPI {
	return &CourseAPI{store: store}
}

func (a *CourseAPI) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/Course/FindCourse/{id}", a.HandleFind)
	mux.HandleFunc("GET /api/Course/ListCourses", a.HandleList)
	mux.HandleFunc("POST /api/Course/AddCourse", a.HandleAdd)
	mux.HandleFunc("DELETE /api/Course/DeleteCourse/{id}", a.HandleDelete)
}

func (a *CourseAPI) Find(ctx context.Context, id int64) (*models.Course, error) {
	course, err := a.store.FindCourse(ctx, id)
	track("course", "find", err)
	return course, err
}

func (a *CourseAPI) List(ctx context.Context, searchKey string) ([]models.Course, error) {
	courses, err := a.store.ListCourses(ctx, searchKey)
	track("course", "list", err)
	return courses, err
}

// Add does not check that TeacherID names an existing teacher.
func (a *CourseAPI) Add(ctx context.Context, course *models.Course) (int64, error) {
	if err := course.Validate(); err != nil {
		return 0, invalid(err)
	}

	id, err := a.store.AddCourse(ctx, course)
	track("course", "add", err)
	return id, err
}

func (a *CourseAPI) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := a.store.DeleteCourse(ctx, id)
	track("course", "delete", err)
	return affected, err
}

func (a *CourseAPI) HandleFind(w http.ResponseWriter, r *http.Request) {
	serveFind(w, r, a.Find)
}

func (a *CourseAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, a.List)
}

func (a *CourseAPI) HandleAdd(w http.ResponseWriter, r *http.Request) {
	serveAdd(w, r, a.Add)
}

func (a *CourseAPI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, a.Delete)
}
