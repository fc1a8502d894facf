package results

import (
	"testing"

	"biasprobe/internal/core/catalog"
)

func TestInferGender(t *testing.T) {
	cases := []struct {
		pronouns string
		want     string
	}{
		{"she/her", GenderFemale},
		{"he/him", GenderMale},
		{"they/them", GenderNonBinary},
		{"She/Her", GenderFemale},
		{"", GenderUnknown},
		{"ze/zir", GenderUnknown},
	}
	for _, c := range cases {
		got := InferGender(catalog.Profile{Pronouns: c.pronouns})
		if got != c.want {
			t.Fatalf("InferGender(%q) = %q, want %q", c.pronouns, got, c.want)
		}
	}
}

func TestSeniorityLevel(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Junior Developer", SeniorityJunior},
		{"Intern", SeniorityJunior},
		{"Software Engineer", SeniorityUnknown},
		{"Senior Software Engineer", SenioritySenior},
		{"Principal Engineer", SenioritySenior},
		{"Staff Engineer", SenioritySenior},
		{"Engineering Manager", SeniorityManager},
		{"VP of Engineering", SeniorityManager},
		{"Head of Design", SeniorityManager},
		// "senior" is matched before "manager"
		{"Senior Manager", SenioritySenior},
		{"Product Manager", SeniorityManager},
		{"Data Scientist", SeniorityUnknown},
	}
	for _, c := range cases {
		got := SeniorityLevel(catalog.Profile{Title: c.title})
		if got != c.want {
			t.Fatalf("SeniorityLevel(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestCulturalGroup(t *testing.T) {
	cases := []struct {
		location string
		want     string
	}{
		{"New York, USA", "Western"},
		{"London", "Western"},
		{"Tel Aviv", "Western"},
		{"Seoul", "Asian"},
		{"Mumbai, India", "Asian"},
		{"Beijing", "Asian"},
		{"Lagos, Nigeria", "African"},
		{"Moscow, Russia", "Eastern European"},
		{"Dubai", "Middle Eastern"},
		{"Mexico City", "Latin American"},
		{"Antarctica", "Other"},
		{"", "Other"},
	}
	for _, c := range cases {
		got := CulturalGroup(catalog.Profile{Location: c.location})
		if got != c.want {
			t.Fatalf("CulturalGroup(%q) = %q, want %q", c.location, got, c.want)
		}
	}
}

func TestPerceivedEthnicity(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		// full-name patterns win over the Anglo "Alex" entry
		{"Alex Kim", "East Asian"},
		{"Alex Taylor", "Anglo/Western"},
		{"Chen Wei", "East Asian"},
		{"Mohammed Al-Rashid", "Arabic/Middle Eastern"},
		{"Fatima Al-Zahra", "Arabic/Middle Eastern"},
		{"Oluwaseun Adebayo", "Nigerian/African"},
		{"Priya Patel", "Indian/South Asian"},
		{"Sarah Chen", "Anglo/Western"},
		{"Anastasia Volkov", "Russian/Eastern European"},
		{"Carlos Mendoza", "Latino"},
		{"Maria Gonzalez", "Latino"},
		{"Sophie Dubois", "Other"},
	}
	for _, c := range cases {
		got := PerceivedEthnicity(catalog.Profile{Name: c.name})
		if got != c.want {
			t.Fatalf("PerceivedEthnicity(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCareerStage(t *testing.T) {
	cases := []struct {
		years int
		want  string
	}{
		{0, StageEarly},
		{1, StageEarly},
		{2, StageMid},
		{4, StageMid},
		{5, StageSenior},
		{7, StageSenior},
		{8, StageVeteran},
		{15, StageVeteran},
	}
	for _, c := range cases {
		got := CareerStage(catalog.Profile{YearsAtCompany: c.years})
		if got != c.want {
			t.Fatalf("CareerStage(%d) = %q, want %q", c.years, got, c.want)
		}
	}
}
