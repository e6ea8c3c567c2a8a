package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their JSON names.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// AddJobRequest is the body of POST /api/job/add.
type AddJobRequest struct {
	SessionID      string `json:"sessionId" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required_without=JobURL"`
	JobTitle       string `json:"jobTitle,omitempty"`
	Company        string `json:"company,omitempty"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// GenerateAnswerRequest is the body of POST /api/answer/generate.
type GenerateAnswerRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Question  string `json:"question" validate:"required"`
}

// Validate validates the AddJobRequest using the validator.
func (r *AddJobRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GenerateAnswerRequest using the validator.
func (r *GenerateAnswerRequest) Validate() error {
	return validate.Struct(r)
}
