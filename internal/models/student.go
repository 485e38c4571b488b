package models

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Student struct {
	ID        int64  `db:"studentid" json:"id"`
	FirstName string `db:"studentfname" json:"first_name" validate:"required,max=255"`
	LastName  string `db:"studentlname" json:"last_name" validate:"required,max=255"`
	Number    string `db:"studentnumber" json:"student_number" validate:"required,max=255"`
	EnrolDate Date   `db:"enroldate" json:"enrol_date"`
}

func (s Student) FullName() string {
	return joinName(s.FirstName, s.LastName)
}

func (s *Student) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// MarshalJSON adds the composed display name next to the stored name parts.
func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return json.Marshal(struct {
		plain
		Name string `json:"name"`
	}{
		plain: plain(s),
		Name:  s.FullName(),
	})
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
