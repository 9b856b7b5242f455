package graph

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("edgetype", func(fl validator.FieldLevel) bool {
		return EdgeType(fl.Field().String()).Valid()
	})
}

// Issue is a single advisory problem found in a snapshot
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validate checks node and edge records against the known shapes and enums.
// The result is advisory: the engine renders whatever Resolve keeps, and
// callers only log the issues.
func Validate(data Data) []Issue {
	err := validate.Struct(&data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []Issue{{Field: "data", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(validationErrs))
	for _, e := range validationErrs {
		issues = append(issues, Issue{Field: e.Namespace(), Message: describe(e)})
	}
	return issues
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", e.Value(), e.Param())
	case "edgetype":
		return fmt.Sprintf("%q is not a known relation kind", e.Value())
	default:
		return fmt.Sprintf("validation failed (%s)", e.Tag())
	}
}
