package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

type Teacher struct {
	ID             int64  `db:"teacherid" json:"id"`
	FirstName      string `db:"teacherfname" json:"first_name" validate:"required,max=255"`
	LastName       string `db:"teacherlname" json:"last_name" validate:"required,max=255"`
	EmployeeNumber string `db:"employeenumber" json:"employee_number" validate:"required,max=255"`
	HireDate       Date   `db:"hiredate" json:"hire_date"`
}

func (t Teacher) FullName() string {
	return joinName(t.FirstName, t.LastName)
}

func (t *Teacher) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

func (t Teacher) MarshalJSON() ([]byte, error) {
	type plain Teacher
	return json.Marshal(struct {
		plain
		Name string `json:"name"`
	}{
		plain: plain(t),
		Name:  t.FullName(),
	})
}
