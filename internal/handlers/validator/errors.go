package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrInvalidForm struct {
	error
}

func NewErrInvalidForm(format string, args ...any) *ErrInvalidForm {
	return &ErrInvalidForm{fmt.Errorf(format, args...)}
}

var tagMessages = map[string]string{
	"required":       "is required",
	"home_tier":      "is not a known home size",
	"density":        "is not a known density tier",
	"hobby":          "is not a known hobby",
	"intensity":      "is not a known hobby intensity",
	"piece":          "is not a known furniture piece",
	"snapshot_label": "contains invalid characters",
	"max":            "is too long",
}

// toFormError turns validator field errors into one readable message.
func toFormError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed on %q", fe.Tag())
		}
		if fe.Value() != nil && fe.Tag() != "required" && fe.Tag() != "max" {
			msgs = append(msgs, fmt.Sprintf("%s %v %s", fieldPath(fe), fe.Value(), msg))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s %s", fieldPath(fe), msg))
	}
	return NewErrInvalidForm("%s", strings.Join(msgs, "; "))
}

// fieldPath drops the top level struct name: "EstimateRequest.Household.Home.Tier" becomes "household.home.tier".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		ns = rest
	}
	return strings.ToLower(ns)
}
