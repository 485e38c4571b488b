package handlers

import (
	"context"
	"net/http"

	"github.com/shrimpsizemoose/skola/internal/models"
	"github.com/shrimpsizemoose/skola/internal/store"
)

// StudentAPI serves /api/Student and is what the student pages call in-process.
type StudentAPI struct {
	store store.SchoolStore
}

func NewStudentAPI(store store.SchoolStore) *StudentAPI {
	return &StudentAPI{store: store}
}

func (a *StudentAPI) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/Student/FindStudent/{id}", a.HandleFind)
	mux.HandleFunc("GET /api/Student/ListStudents", a.HandleList)
	mux.HandleFunc("POST /api/Student/AddStudent", a.HandleAdd)
	mux.HandleFunc("DELETE /api/Student/DeleteStudent/{id}", a.HandleDelete)
}

func (a *StudentAPI) Find(ctx context.Context, id int64) (*models.Student, error) {
	student, err := a.store.FindStudent(ctx, id)
	track("student", "find", err)
	return student, err
}

func (a *StudentAPI) List(ctx context.Context, searchKey string) ([]models.Student, error) {
	students, err := a.store.ListStudents(ctx, searchKey)
	track("student", "list", err)
	return students, err
}

// Add stores the student and returns its new id. A missing enrol date means today.
func (a *StudentAPI) Add(ctx context.Context, student *models.Student) (int64, error) {
	if err := student.Validate(); err != nil {
		return 0, invalid(err)
	}
	if student.EnrolDate.IsZero() {
		student.EnrolDate = models.Today()
	}

	id, err := a.store.AddStudent(ctx, student)
	track("student", "add", err)
	return id, err
}

func (a *StudentAPI) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := a.store.DeleteStudent(ctx, id)
	track("student", "delete", err)
	return affected, err
}

func (a *StudentAPI) HandleFind(w http.ResponseWriter, r *http.Request) {
	serveFind(w, r, a.Find)
}

func (a *StudentAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, a.List)
}

func (a *StudentAPI) HandleAdd(w http.ResponseWriter, r *http.Request) {
	serveAdd(w, r, a.Add)
}

func (a *StudentAPI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, a.Delete)
}
