package results

import (
	"strings"

	"biasprobe/internal/core/catalog"
)

// Inferred gender values
const (
	GenderFemale    = "female"
	GenderMale      = "male"
	GenderNonBinary = "non-binary"
	GenderUnknown   = "unknown"
)

// Seniority tiers derived from title keywords
const (
	SeniorityJunior  = "junior"
	SeniorityMid     = "mid"
	SenioritySenior  = "senior"
	SeniorityManager = "manager"
	SeniorityUnknown = "unknown"
)

// Career stages derived from tenure
const (
	StageEarly   = "Early Career"
	StageMid     = "Mid Career"
	StageSenior  = "Senior Career"
	StageVeteran = "Veteran"
)

// InferGender maps pronouns to an inferred gender label.
// Total over the three known pronoun sets; anything else is unknown
func InferGender(p catalog.Profile) string {
	switch {
	case strings.Contains(strings.ToLower(p.Pronouns), "she/her"):
		return GenderFemale
	case strings.Contains(strings.ToLower(p.Pronouns), "he/him"):
		return GenderMale
	case strings.Contains(strings.ToLower(p.Pronouns), "they/them"):
		return GenderNonBinary
	default:
		return GenderUnknown
	}
}

// seniorityTiers is checked in order; first keyword hit wins, so
// "Senior Manager" lands in the senior tier, not manager
var seniorityTiers = []struct {
	level    string
	keywords []string
}{
	{SeniorityJunior, []string{"junior", "intern", "entry"}},
	{SeniorityMid, []string{"mid", "intermediate"}},
	{SenioritySenior, []string{"senior", "lead", "principal", "staff"}},
	{SeniorityManager, []string{"manager", "director", "vp", "head"}},
}

// SeniorityLevel buckets a title into a seniority tier by keyword match
func SeniorityLevel(p catalog.Profile) string {
	title := strings.ToLower(p.Title)
	for _, tier := range seniorityTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(title, kw) {
				return tier.level
			}
		}
	}
	return SeniorityUnknown
}

// culturalRegions maps region labels to location substrings. The table only
// covers the locations present in the catalog; it is a fixture heuristic,
// not a general geography classifier
var culturalRegions = []struct {
	group     string
	locations []string
}{
	{"Western", []string{"New York, USA", "London", "Dublin", "Tel Aviv", "Madrid"}},
	{"Asian", []string{"Seoul", "Mumbai, India", "Singapore", "Beijing"}},
	{"African", []string{"Lagos, Nigeria"}},
	{"Eastern European", []string{"Moscow, Russia"}},
	{"Middle Eastern", []string{"Dubai"}},
	{"Latin American", []string{"Mexico City"}},
}

// CulturalGroup buckets a location into a coarse cultural region
func CulturalGroup(p catalog.Profile) string {
	for _, region := range culturalRegions {
		for _, loc := range region.locations {
			if strings.Contains(p.Location, loc) {
				return region.group
			}
		}
	}
	return "Other"
}

// ethnicityPatterns maps perceived-ethnicity labels to name substrings.
// Full-name patterns come before first-name patterns so "Alex Kim" resolves
// East Asian rather than matching the Anglo "Alex" entry. Fixture heuristic
// covering only catalog names, not a name classifier
var ethnicityPatterns = []struct {
	group string
	names []string
}{
	{"East Asian", []string{"Alex Kim", "Chen Wei", "Amy Zhang"}},
	{"Arabic/Middle Eastern", []string{"Mohammed", "Fatima"}},
	{"Nigerian/African", []string{"Oluwaseun"}},
	{"Indian/South Asian", []string{"Priya"}},
	{"Anglo/Western", []string{"John", "Michael", "Sarah", "Jennifer", "David", "Rachel", "Emma", "Alex", "Robert", "James"}},
	{"Russian/Eastern European", []string{"Anastasia"}},
	{"Latino", []string{"Carlos", "Maria"}},
}

// PerceivedEthnicity buckets a name into a perceived-ethnicity label
func PerceivedEthnicity(p catalog.Profile) string {
	for _, pat := range ethnicityPatterns {
		for _, n := range pat.names {
			if strings.Contains(p.Name, n) {
				return pat.group
			}
		}
	}
	return "Other"
}

// CareerStage buckets tenure into a career stage.
// Breakpoints: <=1 Early, <=4 Mid, <=7 Senior, else Veteran
func CareerStage(p catalog.Profile) string {
	switch {
	case p.YearsAtCompany <= 1:
		return StageEarly
	case p.YearsAtCompany <= 4:
		return StageMid
	case p.YearsAtCompany <= 7:
		return StageSenior
	default:
		return StageVeteran
	}
}
