// Package validation turns raw resolver arguments into normalized,
// sanitized inputs, reporting every offending field on failure.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"todo-backend/internal/domain/todo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("priority", validPriority)
	v.RegisterValidation("isodate", validDate)
	v.RegisterValidation("todoid", validTodoID)

	return v
}

func validPriority(fl validator.FieldLevel) bool {
	return todo.Priority(fl.Field().String()).Valid()
}

func validDate(fl validator.FieldLevel) bool {
	_, err := todo.ParseDate(fl.Field().String())
	return err == nil
}

func validTodoID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// check runs struct tag validation and converts the result into *Errors.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), messageFor(fe))
	}
	return out
}

// fieldPath strips the struct name from the error namespace, leaving the
// JSON path of the offending field (e.g. "tags[0]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	isTagEntry := strings.HasPrefix(field, "tags[")
	isIDEntry := strings.HasPrefix(field, "ids[")

	switch fe.Tag() {
	case "required":
		switch field {
		case "title":
			return "Title is required"
		case "priority":
			return "Priority is required"
		case "id":
			return "Invalid todo ID"
		case "ids":
			return "At least one id is required"
		}
	case "min":
		switch {
		case field == "title":
			return "Title is required"
		case isTagEntry:
			return "Tag cannot be empty"
		case field == "ids":
			return "At least one id is required"
		case field == "limit":
			return "Limit must be at least 1"
		}
	case "max":
		switch {
		case field == "title":
			return "Title must be 100 characters or less"
		case field == "description":
			return "Description must be 500 characters or less"
		case field == "tags":
			return "Maximum 10 tags allowed"
		case isTagEntry:
			return "Tag must be 30 characters or less"
		case field == "ids":
			return "Maximum 100 ids allowed"
		case field == "limit":
			return "Limit must be 100 or less"
		}
	case "priority":
		return "Invalid priority"
	case "isodate":
		return "Invalid date format"
	case "todoid":
		if isIDEntry || field == "id" {
			return "Invalid todo ID"
		}
		return "Invalid ID"
	}
	return field + " is invalid"
}
