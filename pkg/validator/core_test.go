package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukas4311/WpfValidation/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with multiple errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "password", Message: "too short"})

		assert.Equal(t, "validation failed: email: is required; password: too short", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "password", Message: "too short"},
		{Field: "email", Message: "is required"},
		{Field: "password", Message: "missing digit"},
	}

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("name"))
	assert.Equal(t, []string{"too short", "missing digit"}, errs.Get("password"))
	assert.Len(t, errs.GetErrors("password"), 2)
	assert.Equal(t, []string{"password", "email"}, errs.Fields())
	assert.False(t, errs.IsEmpty())
}

func TestValidationError_TranslationArgs(t *testing.T) {
	err := validator.ValidationError{
		TranslationValues: map[string]any{"min": 3, "field": "Name"},
	}
	assert.Equal(t, []string{"field", "Name", "min", "3"}, err.TranslationArgs())
}

func TestSnapshot(t *testing.T) {
	s := validator.Snapshot{"Age": 42}

	assert.True(t, s.Has("Age"))
	assert.Nil(t, s.Get("Missing"))

	age, ok := validator.Field[int](s, "Age")
	assert.True(t, ok)
	assert.Equal(t, 42, age)

	_, ok = validator.Field[string](s, "Age")
	assert.False(t, ok)
}

func TestRule_Overrides(t *testing.T) {
	r := validator.Required().WithMessage("enter a value").WithKey("forms.required")

	assert.Equal(t, "enter a value", r.Error.Message)
	assert.Equal(t, "forms.required", r.Error.TranslationKey)
	assert.Equal(t, "field is required", validator.Required().Error.Message, "original rule is untouched")
}
