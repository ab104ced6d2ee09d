package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smartstow/move-planner/internal/reference"
)

// labels may contain spaces but must start and end with a visible character
var snapshotLabelRegex = regexp.MustCompile(`^[\p{L}\p{N}]([\p{L}\p{N} ._'&()-]*[\p{L}\p{N}.)])?$`)

func homeTierValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return reference.HomeTier(val).IsValid()
}

func densityValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return reference.DensityTier(val).IsValid()
}

func hobbyValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return reference.HobbyID(val).IsValid()
}

func intensityValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := reference.ParseIntensity(val)
	return err == nil
}

func pieceValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return reference.PieceType(val).IsValid()
}

func snapshotLabelValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return snapshotLabelRegex.MatchString(strings.TrimSpace(val))
}
