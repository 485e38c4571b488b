package models

import (
	"github.com/go-playground/validator/v10"
)

// Course.TeacherID is not checked against the teachers table.
type Course struct {
	ID         int64  `db:"courseid" json:"id"`
	Code       string `db:"coursecode" json:"course_code" validate:"required,max=255"`
	TeacherID  int64  `db:"teacherid" json:"teacher_id"`
	Name       string `db:"coursename" json:"name" validate:"required,max=255"`
	StartDate  Date   `db:"startdate" json:"start_date"`
	FinishDate Date   `db:"finishdate" json:"finish_date"`
}

func (c *Course) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
