package callbatch

import (
	"github.com/lukas4311/WpfValidation/pkg/validator"
)

// Property names of the form.
const (
	ContactStates         = "ContactStates"
	SelectedContactState  = "SelectedContactState"
	MarketingSourceID     = "MarketingSourceID"
	AgentID               = "AgentID"
	BatchType             = "BatchType"
	RegionID              = "RegionID"
	MinDayCount           = "MinDayCountFromLastStateChange"
	MaxDayCount           = "MaxDayCountFromLastStateChange"
	FirstStatusChangeFrom = "FirstStatusChangeFrom"
	FirstStatusChangeTo   = "FirstStatusChangeTo"
	Result                = "Result"
	ResultVisible         = "ResultVisible"
	AutoBatchEnabled      = "AutoBatchEnabled"
	CanCreateBatch        = "CanCreateBatch"
)

// MinNotAboveMax is the predicate bounding the day-count range.
const MinNotAboveMax = "MinNotAboveMax"

type rules struct{}

func (rules) DeclareRules(b *validator.Builder) {
	b.Property(SelectedContactState).
		Rule(required("Select a contact state", "callbatch.state.required")).
		Summary(1)
	b.Property(FirstStatusChangeFrom).
		Rule(required("Enter the start of the status change window", "callbatch.window.from_required")).
		Rule(validator.NotAfterField(FirstStatusChangeTo).
			WithMessage("The window must not start after it ends").
			WithKey("callbatch.window.order")).
		Summary(2)
	b.Property(FirstStatusChangeTo).
		Rule(required("Enter the end of the status change window", "callbatch.window.to_required")).
		Summary(3)
	b.Property(MinDayCount).
		Rule(nonNegative()).
		Condition(MinNotAboveMax, "Minimum day count must not exceed the maximum").
		InSummary()
	b.Property(MaxDayCount).
		Rule(nonNegative())

	b.Predicate(MinNotAboveMax, func(v any, s validator.Snapshot) bool {
		minDays, ok := v.(int)
		maxDays, mok := validator.Field[int](s, MaxDayCount)
		return !ok || !mok || minDays <= maxDays
	})
}

func required(message, key string) validator.Rule {
	return validator.Required().WithMessage(message).WithKey(key)
}

func nonNegative() validator.Rule {
	return validator.Min(0).
		WithMessage("Day count must not be negative").
		WithKey("callbatch.days.negative")
}
