package validator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukas4311/WpfValidation/pkg/validator"
)

func dateRangeCatalog(t *testing.T) *validator.Catalog {
	t.Helper()
	c, err := validator.Define(func(b *validator.Builder) {
		b.Property("ValidFrom").
			Required("required").
			Condition("FromNotAfterTo", "from must not be after to").
			Summary(2)
		b.Property("ValidTo").Summary(1)
		b.Property("Note")

		b.Predicate("FromNotAfterTo", func(v any, s validator.Snapshot) bool {
			from, ok := v.(time.Time)
			to, tok := validator.Field[time.Time](s, "ValidTo")
			return !ok || !tok || !from.After(to)
		})
	})
	require.NoError(t, err)
	return c
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order and summary positions", func(t *testing.T) {
		t.Parallel()
		c := dateRangeCatalog(t)

		assert.Equal(t, []string{"ValidFrom", "ValidTo", "Note"}, c.Properties())
		assert.True(t, c.HasRules("ValidFrom"))
		assert.False(t, c.HasRules("Note"))
		assert.Len(t, c.Rules("ValidFrom"), 2)

		order, ok := c.SummaryOrder("ValidFrom")
		assert.True(t, ok)
		assert.Equal(t, 2, order)

		_, ok = c.SummaryOrder("Note")
		assert.False(t, ok)
	})

	t.Run("in summary defaults to last", func(t *testing.T) {
		t.Parallel()
		c, err := validator.Define(func(b *validator.Builder) {
			b.Property("A").InSummary()
		})
		require.NoError(t, err)

		order, ok := c.SummaryOrder("A")
		assert.True(t, ok)
		assert.Equal(t, validator.LastOrder, order)
	})

	t.Run("unresolved condition is a configuration error", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Define(func(b *validator.Builder) {
			b.Property("ValidTo").Condition("Missing", "msg")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrUnresolvedCondition)
	})

	t.Run("rules on undeclared property are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Define(func(b *validator.Builder) {
			b.Rules("Ghost", validator.Required())
			b.Summary("Phantom", 1)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrUnknownProperty)
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Define(func(b *validator.Builder) {
			b.Property("")
			b.Property("A").Rule(validator.Rule{Name: "broken"})
			b.Predicate("P", func(any, validator.Snapshot) bool { return true })
			b.Predicate("P", func(any, validator.Snapshot) bool { return true })
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrEmptyPropertyName)
		assert.ErrorIs(t, err, validator.ErrNilCheck)
		assert.ErrorIs(t, err, validator.ErrDuplicatePredicate)
	})

	t.Run("build is deterministic", func(t *testing.T) {
		t.Parallel()
		a := dateRangeCatalog(t)
		b := dateRangeCatalog(t)
		assert.Equal(t, a.Properties(), b.Properties())
		for _, p := range a.Properties() {
			assert.Len(t, b.Rules(p), len(a.Rules(p)))
		}
	})
}

func TestCatalog_Evaluate(t *testing.T) {
	t.Parallel()
	c := dateRangeCatalog(t)
	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("required failure stops the property", func(t *testing.T) {
		t.Parallel()
		errs, err := c.Evaluate(validator.Snapshot{"ValidTo": jan10})
		require.NoError(t, err)
		assert.Equal(t, []string{"required"}, errs.Get("ValidFrom"))
		assert.Equal(t, []string{"ValidFrom"}, errs.Fields())
	})

	t.Run("cross field rule sees the snapshot", func(t *testing.T) {
		t.Parallel()
		errs, err := c.Evaluate(validator.Snapshot{"ValidFrom": jan10, "ValidTo": jan5})
		require.NoError(t, err)
		assert.Equal(t, []string{"from must not be after to"}, errs.Get("ValidFrom"))

		verr := errs.GetErrors("ValidFrom")[0]
		assert.Equal(t, "ValidFrom", verr.Field)
		assert.Equal(t, "ValidFrom", verr.TranslationValues["field"])
	})

	t.Run("valid snapshot has no errors", func(t *testing.T) {
		t.Parallel()
		errs, err := c.Evaluate(validator.Snapshot{"ValidFrom": jan5, "ValidTo": jan10})
		require.NoError(t, err)
		assert.True(t, errs.IsEmpty())
	})

	t.Run("multiple failures keep rule order", func(t *testing.T) {
		t.Parallel()
		c, err := validator.Define(func(b *validator.Builder) {
			b.Property("Code").Rule(
				validator.MinLen(5).WithMessage("too short"),
				validator.Pattern(`^[0-9]+$`, "digits").WithMessage("digits only"),
			)
		})
		require.NoError(t, err)

		errs, err := c.Evaluate(validator.Snapshot{"Code": "ab"})
		require.NoError(t, err)
		assert.Equal(t, []string{"too short", "digits only"}, errs.Get("Code"))
	})

	t.Run("panicking rule aborts evaluation", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		c, err := validator.Define(func(b *validator.Builder) {
			b.Property("A").Required("required")
			b.Property("B").Rule(validator.Rule{
				Name:  "explodes",
				Check: func(any, validator.Snapshot) bool { panic(boom) },
			})
		})
		require.NoError(t, err)

		errs, err := c.Evaluate(validator.Snapshot{})
		require.Error(t, err)
		assert.Nil(t, errs)
		assert.ErrorIs(t, err, validator.ErrEvaluationFault)
		assert.ErrorIs(t, err, boom)
		assert.True(t, validator.IsEvaluationError(err))

		var evalErr *validator.EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, "B", evalErr.Property)
		assert.Equal(t, "explodes", evalErr.Rule)
	})
}
