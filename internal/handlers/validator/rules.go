package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func householdRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("home_tier", homeTierValidator),
		},
		{
			Rule: registerFn("density", densityValidator),
		},
		{
			Rule: registerFn("hobby", hobbyValidator),
		},
		{
			Rule: registerFn("intensity", intensityValidator),
		},
		{
			Rule: registerFn("piece", pieceValidator),
		},
	}
}

func NewEstimateValidationRules() []ValidationRule {
	return householdRules()
}

func NewSnapshotValidationRules() []ValidationRule {
	return append(householdRules(), ValidationRule{
		Rule: registerFn("snapshot_label", snapshotLabelValidator),
	})
}
