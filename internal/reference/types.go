package reference

// HomeTier is the declared size of the home being moved.
type HomeTier string

const (
	TierStudio HomeTier = "studio"
	Tier1Bed   HomeTier = "1bed"
	Tier2Bed   HomeTier = "2bed"
	Tier3Bed   HomeTier = "3bed"
	Tier4Bed   HomeTier = "4bed"
)

// HomeTiers lists every home tier, smallest first.
var HomeTiers = []HomeTier{TierStudio, Tier1Bed, Tier2Bed, Tier3Bed, Tier4Bed}

// DensityTier describes how much stuff the household owns relative to an average home of the same size.
type DensityTier string

const (
	DensityMinimalist   DensityTier = "minimalist"
	DensityAverage      DensityTier = "average"
	DensityAboveAverage DensityTier = "aboveAverage"
	DensityCollector    DensityTier = "collector"
)

// DensityTiers lists every density tier, sparsest first.
var DensityTiers = []DensityTier{DensityMinimalist, DensityAverage, DensityAboveAverage, DensityCollector}

// Intensity is how seriously a hobby is pursued. It drives the volume of gear that hobby adds.
type Intensity string

const (
	IntensityNone    Intensity = "none"
	IntensityMin     Intensity = "min"
	IntensityAverage Intensity = "average"
	IntensityHigh    Intensity = "high"
	IntensityPro     Intensity = "pro"
)

// Intensities lists every intensity level in ascending order.
var Intensities = []Intensity{IntensityNone, IntensityMin, IntensityAverage, IntensityHigh, IntensityPro}

// ActiveIntensities are the levels that carry a volume in a hobby table.
var ActiveIntensities = []Intensity{IntensityMin, IntensityAverage, IntensityHigh, IntensityPro}

// Rank returns the position of the level in Intensities, or -1 for an unknown level.
func (i Intensity) Rank() int {
	for idx, level := range Intensities {
		if level == i {
			return idx
		}
	}
	return -1
}

// HobbyID identifies a hobby in the hobby table.
type HobbyID string

const (
	HobbyCycling  HobbyID = "cycling"
	HobbyGolf     HobbyID = "golf"
	HobbySki      HobbyID = "ski"
	HobbyCamping  HobbyID = "camping"
	HobbyMusician HobbyID = "musician"
	HobbyGaming   HobbyID = "gaming"
	HobbyGarden   HobbyID = "garden"
	HobbyCrafter  HobbyID = "crafter"
)

// Hobbies lists every known hobby in display order.
var Hobbies = []HobbyID{
	HobbyCycling, HobbyGolf, HobbySki, HobbyCamping,
	HobbyMusician, HobbyGaming, HobbyGarden, HobbyCrafter,
}

// PieceType is a kind of furniture moved as a single unboxed piece.
type PieceType string

const (
	PieceSofa    PieceType = "sofa"
	PieceTable   PieceType = "table"
	PieceBed     PieceType = "bed"
	PieceDresser PieceType = "dresser"
	PieceDesk    PieceType = "desk"
)

// PieceTypes lists every furniture piece type in display order.
var PieceTypes = []PieceType{PieceSofa, PieceTable, PieceBed, PieceDresser, PieceDesk}

// IsValid reports whether t is one of the enumerated home tiers.
func (t HomeTier) IsValid() bool { return contains(HomeTiers, t) }

// IsValid reports whether d is one of the enumerated density tiers.
func (d DensityTier) IsValid() bool { return contains(DensityTiers, d) }

// IsValid reports whether i is one of the enumerated intensity levels.
func (i Intensity) IsValid() bool { return i.Rank() >= 0 }

// IsValid reports whether h is one of the enumerated hobbies.
func (h HobbyID) IsValid() bool { return contains(Hobbies, h) }

// IsValid reports whether p is one of the enumerated furniture piece types.
func (p PieceType) IsValid() bool { return contains(PieceTypes, p) }

// ParseHomeTier resolves a raw value into a HomeTier.
func ParseHomeTier(raw string) (HomeTier, error) {
	t := HomeTier(raw)
	if !t.IsValid() {
		return "", NewErrUnknownValue("home tier", raw)
	}
	return t, nil
}

// ParseDensityTier resolves a raw value into a DensityTier.
func ParseDensityTier(raw string) (DensityTier, error) {
	d := DensityTier(raw)
	if !d.IsValid() {
		return "", NewErrUnknownValue("density tier", raw)
	}
	return d, nil
}

// ParseIntensity resolves a raw value into an Intensity. "avg" is accepted for "average".
func ParseIntensity(raw string) (Intensity, error) {
	if raw == "avg" {
		return IntensityAverage, nil
	}
	i := Intensity(raw)
	if !i.IsValid() {
		return "", NewErrUnknownValue("intensity", raw)
	}
	return i, nil
}

// ParseHobbyID resolves a raw value into a HobbyID.
func ParseHobbyID(raw string) (HobbyID, error) {
	h := HobbyID(raw)
	if !h.IsValid() {
		return "", NewErrUnknownValue("hobby", raw)
	}
	return h, nil
}

// ParsePieceType resolves a raw value into a PieceType.
func ParsePieceType(raw string) (PieceType, error) {
	p := PieceType(raw)
	if !p.IsValid() {
		return "", NewErrUnknownValue("furniture piece", raw)
	}
	return p, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
