package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/skola/internal/store"
	"github.com/shrimpsizemoose/skola/internal/views"
)

func NewRouter(s store.SchoolStore, renderer *views.Renderer) http.Handler {
	mux := http.NewServeMux()

	courses := NewCourseAPI(s)
	students := NewStudentAPI(s)
	teachers := NewTeacherAPI(s)

	courses.Register(mux)
	students.Register(mux)
	teachers.Register(mux)

	NewCoursePages(courses, renderer).Register(mux)
	NewStudentPages(students, renderer).Register(mux)
	NewTeacherPages(teachers, renderer).Register(mux)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/TeacherPage/List", http.StatusFound)
	})
	mux.HandleFunc("GET /healthz", Health(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	return Instrument(mux)
}
