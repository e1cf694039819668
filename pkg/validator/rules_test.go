package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lukas4311/WpfValidation/pkg/validator"
)

func TestBuiltinRules(t *testing.T) {
	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	blank := "   "

	tests := []struct {
		name  string
		rule  validator.Rule
		value any
		snap  validator.Snapshot
		want  bool
	}{
		{"required nil", validator.Required(), nil, nil, false},
		{"required blank string", validator.Required(), " ", nil, false},
		{"required blank string pointer", validator.Required(), &blank, nil, false},
		{"required zero time", validator.Required(), time.Time{}, nil, false},
		{"required empty slice", validator.Required(), []int{}, nil, false},
		{"required zero int is present", validator.Required(), 0, nil, true},
		{"required value", validator.Required(), "x", nil, true},
		{"required string rejects non string", validator.RequiredString(), 5, nil, false},
		{"required string", validator.RequiredString(), "x", nil, true},

		{"min length short", validator.MinLen(3), "ab", nil, false},
		{"min length counts runes", validator.MinLen(3), "čřž", nil, true},
		{"min length slice", validator.MinLen(2), []string{"a"}, nil, false},
		{"min length nil passes", validator.MinLen(3), nil, nil, true},
		{"max length long", validator.MaxLen(2), "abc", nil, false},
		{"max length ok", validator.MaxLen(3), "abc", nil, true},

		{"pattern mismatch", validator.Pattern(`^\d+$`, "digits"), "12a", nil, false},
		{"pattern match", validator.Pattern(`^\d+$`, "digits"), "123", nil, true},
		{"pattern empty passes", validator.Pattern(`^\d+$`, "digits"), "", nil, true},

		{"email valid", validator.Email(), "user@example.com", nil, true},
		{"email display name rejected", validator.Email(), "User <user@example.com>", nil, false},
		{"email missing tld", validator.Email(), "user@example", nil, false},
		{"email empty passes", validator.Email(), "", nil, true},

		{"min int", validator.Min(18), 17, nil, false},
		{"min float", validator.Min(18), 18.0, nil, true},
		{"max uint", validator.Max(10), uint8(11), nil, false},
		{"between pointer", validator.Between(1, 5), ptr(3), nil, true},
		{"between outside", validator.Between(1, 5), 6, nil, false},
		{"numeric rule ignores strings", validator.Min(1), "0", nil, true},

		{"in list", validator.InList("a", "b"), "b", nil, true},
		{"not in list", validator.InList("a", "b"), "c", nil, false},
		{"in list wrong type", validator.InList("a"), 1, nil, false},
		{"in list nil", validator.InList("a"), nil, nil, true},

		{"not before", validator.NotBefore(jan10), jan5, nil, false},
		{"not before equal", validator.NotBefore(jan10), jan10, nil, true},
		{"not after", validator.NotAfter(jan5), jan10, nil, false},
		{"not after pointer", validator.NotAfter(jan10), &jan5, nil, true},

		{"not after field", validator.NotAfterField("ValidTo"), jan10, validator.Snapshot{"ValidTo": jan5}, false},
		{"not after field ok", validator.NotAfterField("ValidTo"), jan5, validator.Snapshot{"ValidTo": jan10}, true},
		{"not after field other missing", validator.NotAfterField("ValidTo"), jan10, validator.Snapshot{}, true},
		{"not before field", validator.NotBeforeField("ValidFrom"), jan5, validator.Snapshot{"ValidFrom": jan10}, false},
		{"not before field equal", validator.NotBeforeField("ValidFrom"), jan5, validator.Snapshot{"ValidFrom": jan5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Check(tt.value, tt.snap))
		})
	}
}

func TestRequired_Stops(t *testing.T) {
	assert.True(t, validator.Required().Stop)
	assert.True(t, validator.RequiredString().Stop)
	assert.False(t, validator.MinLen(1).Stop)
}

func TestCompilePattern_InvalidExpression(t *testing.T) {
	_, err := validator.CompilePattern(`(`, "broken")
	assert.Error(t, err)
	assert.Panics(t, func() { validator.Pattern(`(`, "broken") })
}

func ptr[T any](v T) *T { return &v }
