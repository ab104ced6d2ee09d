package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/spf13/pflag"
)

// HouseholdOptions describe a household on the command line, or point at a saved record.
type HouseholdOptions struct {
	HomeSize     string
	Density      string
	// Occupants and Helpers are read as text so unusable values clamp instead of failing flag parsing.
	Occupants    string
	Helpers      string
	Hobbies      []string
	Furniture    []string
	TierDefaults bool
	FromFile     string
}

func DefaultHouseholdOptions() HouseholdOptions {
	return HouseholdOptions{
		HomeSize:  string(reference.Tier2Bed),
		Density:   string(reference.DensityAverage),
		Occupants: "2",
		Helpers:   "0",
	}
}

func (o *HouseholdOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.HomeSize, "home-size", o.HomeSize, fmt.Sprintf("Home size. One of: (%s).", joinValues(reference.HomeTiers)))
	fs.StringVar(&o.Density, "density", o.Density, fmt.Sprintf("How much stuff the household owns. One of: (%s).", joinValues(reference.DensityTiers)))
	fs.StringVar(&o.Occupants, "occupants", o.Occupants, fmt.Sprintf("Number of people living in the home (%d-%d)", household.MinOccupants, household.MaxOccupants))
	fs.StringVar(&o.Helpers, "helpers", o.Helpers, fmt.Sprintf("Number of extra people helping on moving day (%d-%d)", household.MinHelpers, household.MaxHelpers))
	fs.StringArrayVar(&o.Hobbies, "hobby", o.Hobbies, fmt.Sprintf("Hobby as ID=LEVEL, repeatable. Levels: (%s).", joinValues(reference.Intensities)))
	fs.StringArrayVar(&o.Furniture, "furniture", o.Furniture, fmt.Sprintf("Furniture as PIECE=COUNT, repeatable. Pieces: (%s).", joinValues(reference.PieceTypes)))
	fs.BoolVar(&o.TierDefaults, "tier-defaults", o.TierDefaults, "Start from the usual furniture of the home size")
	fs.StringVar(&o.FromFile, "from-file", o.FromFile, "Read the household from a saved snapshot record instead of the flags")
}

func (o *HouseholdOptions) Validate(args []string) error {
	if o.FromFile != "" {
		return nil
	}
	if _, err := reference.ParseHomeTier(o.HomeSize); err != nil {
		return err
	}
	if _, err := reference.ParseDensityTier(o.Density); err != nil {
		return err
	}
	for _, raw := range o.Hobbies {
		if _, _, err := parseHobby(raw); err != nil {
			return err
		}
	}
	for _, raw := range o.Furniture {
		if _, _, err := parsePiece(raw, io.Discard); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot builds the household. Counts that had to be corrected and unreadable records are reported on
// warnings; neither stops the command.
func (o *HouseholdOptions) Snapshot(table *reference.Table, warnings io.Writer) (household.Snapshot, error) {
	if o.FromFile != "" {
		data, err := os.ReadFile(o.FromFile)
		if err != nil {
			return household.Snapshot{}, fmt.Errorf("reading snapshot record: %w", err)
		}
		s, err := household.Restore(data)
		if err != nil {
			fmt.Fprintf(warnings, "warning: %s is not a readable snapshot record, using the default household: %v\n", o.FromFile, err)
		}
		return s, nil
	}

	occupants := parseCount("occupants", o.Occupants, household.MinOccupants, household.MaxOccupants, warnings)
	helpers := parseCount("helpers", o.Helpers, household.MinHelpers, household.MaxHelpers, warnings)

	s := household.NewSnapshot(household.NewHomeProfile(
		reference.HomeTier(o.HomeSize),
		reference.DensityTier(o.Density),
		occupants,
		helpers,
	))

	if o.TierDefaults {
		if err := s.ApplyTierDefaults(table); err != nil {
			return household.Snapshot{}, err
		}
	}
	for _, raw := range o.Hobbies {
		id, level, err := parseHobby(raw)
		if err != nil {
			return household.Snapshot{}, err
		}
		s.SetHobby(id, level)
	}
	for _, raw := range o.Furniture {
		piece, count, err := parsePiece(raw, warnings)
		if err != nil {
			return household.Snapshot{}, err
		}
		s.SetPieceCount(piece, count)
	}
	return s, nil
}

func parseHobby(raw string) (reference.HobbyID, reference.Intensity, error) {
	rawID, rawLevel, err := splitPair("hobby", raw)
	if err != nil {
		return "", "", err
	}
	id, err := reference.ParseHobbyID(rawID)
	if err != nil {
		return "", "", err
	}
	level, err := reference.ParseIntensity(rawLevel)
	if err != nil {
		return "", "", err
	}
	return id, level, nil
}

// parsePiece reads PIECE=COUNT. A count that is not a number becomes zero and one outside the allowed
// range the nearest bound, both with a warning.
func parsePiece(raw string, warnings io.Writer) (reference.PieceType, int, error) {
	rawPiece, rawCount, err := splitPair("furniture", raw)
	if err != nil {
		return "", 0, err
	}
	piece, err := reference.ParsePieceType(rawPiece)
	if err != nil {
		return "", 0, err
	}
	return piece, parseCount(string(piece), rawCount, household.MinCount, household.MaxCount, warnings), nil
}

// parseCount reads a count, reporting a corrected value on warnings.
func parseCount(field, raw string, min, max int, warnings io.Writer) int {
	count, err := household.ParseCount(field, raw, min, max)
	var rangeErr *household.ErrInputRange
	if errors.As(err, &rangeErr) {
		fmt.Fprintf(warnings, "warning: %v\n", err)
	}
	return count
}

func joinValues[T ~string](values []T) string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		res = append(res, string(v))
	}
	return strings.Join(res, ", ")
}
