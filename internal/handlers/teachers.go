package handlers

import (
	"context"
	"net/http"

	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
)

// TeacherAPI serves /api/Teacher and is what the teacher pages call in-process.
type TeacherAPI struct {
	store store.SchoolStore
}

func NewTeacherAPI(store store.SchoolStore) *TeacherAPI {
	return &TeacherAPI{store: store}
}

func (a *TeacherAPI) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/Teacher/FindTeacher/{id}", a.HandleFind)
	mux.HandleFunc("GET /api/Teacher/ListTeachers", a.HandleList)
	mux.HandleFunc("POST /api/Teacher/AddTeacher", a.HandleAdd)
	mux.HandleFunc("DELETE /api/Teacher/DeleteTeacher/{id}", a.HandleDelete)
}

func (a *TeacherAPI) Find(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := a.store.FindTeacher(ctx, id)
	track("teacher", "find", err)
	return teacher, err
}

func (a *TeacherAPI) List(ctx context.Context, searchKey string) ([]models.Teacher, error) {
	teachers, err := a.store.ListTeachers(ctx, searchKey)
	track("teacher", "list", err)
	return teachers, err
}

// Add stores the teacher and returns its new id. A missing hire date means today.
func (a *TeacherAPI) Add(ctx context.Context, teacher *models.Teacher) (int64, error) {
	if err := teacher.Validate(); err != nil {
		return 0, invalid(err)
	}
	if teacher.HireDate.IsZero() {
		teacher.HireDate = models.Today()
	}

	id, err := a.store.AddTeacher(ctx, teacher)
	track("teacher", "add", err)
	return id, err
}

func (a *TeacherAPI) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := a.store.DeleteTeacher(ctx, id)
	track("teacher", "delete", err)
	return affected, err
}

func (a *TeacherAPI) HandleFind(w http.ResponseWriter, r *http.Request) {
	serveFind(w, r, a.Find)
}

func (a *TeacherAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, a.List)
}

func (a *TeacherAPI) HandleAdd(w http.ResponseWriter, r *http.Request) {
	serveAdd(w, r, a.Add)
}

func (a *TeacherAPI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, a.Delete)
}
