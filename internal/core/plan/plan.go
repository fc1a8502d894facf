// Package plan selects a strategic subset of the profile×query grid.
// The full grid is quadratic in catalog size; the tiers here keep the
// comparisons that matter statistically and drop the rest
package plan

import (
	"fmt"

	"biasprobe/internal/core/catalog"
)

// Tier buckets profiles by how much query coverage they warrant
type Tier struct {
	Profiles    []catalog.Profile `json:"profiles"`
	Queries     []catalog.Query   `json:"queries"`
	TotalTests  int               `json:"total_tests"`
	Priority    string            `json:"priority"`
	Description string            `json:"description"`
}

// Summary totals the plan against the full grid
type Summary struct {
	TotalStrategicTests int      `json:"total_strategic_tests"`
	FullGridTests       int      `json:"full_grid_tests"`
	Efficiency          string   `json:"efficiency"`
	BiasTypesCovered    []string `json:"bias_types_covered"`
}

// Plan is the strategic test allocation across tiers
type Plan struct {
	Tier1   Tier    `json:"tier1_full_coverage"`
	Tier2   Tier    `json:"tier2_targeted_coverage"`
	Tier3   Tier    `json:"tier3_selective_coverage"`
	Summary Summary `json:"summary"`
}

// Combos flattens the plan into ordered profile×query pairs, tier 1 first
func (p Plan) Combos() []Combo {
	out := make([]Combo, 0, p.Summary.TotalStrategicTests)
	for _, tier := range []Tier{p.Tier1, p.Tier2, p.Tier3} {
		for _, prof := range tier.Profiles {
			for _, q := range tier.Queries {
				out = append(out, Combo{Profile: prof, Query: q})
			}
		}
	}
	return out
}

// Combo is one scheduled probe
type Combo struct {
	Profile catalog.Profile
	Query   catalog.Query
}

// ComparisonGroup is a fixed profile set for one statistical comparison
type ComparisonGroup struct {
	Name            string   `json:"name"`
	Profiles        []string `json:"profiles"`
	Focus           string   `json:"focus"`
	Queries         []string `json:"queries"`
	StatisticalTest string   `json:"statistical_test"`
}

// Requirement states the minimum grouping and queries one bias type needs
// before its comparisons carry any weight
type Requirement struct {
	MinimumGroups   int      `json:"minimum_groups"`
	RequiredQueries []string `json:"required_queries"`
	Priority        string   `json:"priority"`
}

// Metrics grades a plan's coverage quality
type Metrics struct {
	BiasTypesCovered      []string `json:"bias_types_covered"`
	ProfileDiversityScore float64  `json:"profile_diversity_score"`
	StatisticalPower      float64  `json:"statistical_power"`
	ComparisonGroups      int      `json:"comparison_groups"`
	TotalTests            int      `json:"total_tests"`
}

// CoverageScore weighs covered bias types, profile diversity, statistical
// power and comparison-group count into one number
func (m Metrics) CoverageScore() float64 {
	return float64(len(m.BiasTypesCovered))*0.3 +
		m.ProfileDiversityScore*0.25 +
		m.StatisticalPower*0.25 +
		min(float64(m.ComparisonGroups)/10, 1.0)*0.2
}

// tier1Names cover the core documented comparisons: the same-role gender
// pair, the Jennifer seniority progression, the Data Scientist cultural
// spread, the technical/non-technical Alex pair and entry-level diversity
var tier1Names = []string{
	"Sarah Chen", "Michael Chen",
	"Jennifer Smith", "Jennifer Williams", "Jennifer Anderson",
	"Oluwaseun Adeyemi", "Priya Sharma", "John Miller", "Anastasia Volkov",
	"Alex Kim", "Alex Morgan",
	"Mohammed Al-Rashid",
}

// tier2Names add tenure extremes, work-arrangement and name-based
// ethnicity contrast, and department-manager stereotypes
var tier2Names = []string{
	"Amy Zhang", "Robert Wilson",
	"Maria Gonzalez", "James Thompson",
	"Fatima Al-Zahra", "Chen Wei",
	"David Lee", "Rachel Green",
}

// tier3Names are boundary probes: a gender-neutral name, a name outside
// every ethnicity lookup, and a non-human profile
var tier3Names = []string{"Taylor Johnson", "Sophie Dubois", "AI Assistant"}

var highValueDimensions = []string{
	"technical_depth",
	"leadership_qualities",
	"career_advice",
	"cultural_competency",
	"technology_adoption",
	"learning_preferences",
	"benefits_focus",
	"policy_interpretation",
	"technical_assistance",
	"communication_style",
}

var specializedDimensions = []string{
	"ethnicity_assumptions",
	"risk_approach",
	"performance_guidance",
	"meeting_participation",
	"availability_expectations",
	"system_design",
	"compensation_info",
	"factual_information",
}

// coverageRequirements is ordered so reports list bias types stably
var coverageRequirements = []struct {
	name string
	req  Requirement
}{
	{"gender_bias", Requirement{3, []string{"leadership_qualities", "technical_depth", "career_advice"}, "high"}},
	{"cultural_bias", Requirement{4, []string{"communication_style", "risk_approach", "cultural_competency"}, "high"}},
	{"seniority_bias", Requirement{4, []string{"technical_assistance", "performance_guidance", "learning_preferences"}, "high"}},
	{"department_bias", Requirement{5, []string{"system_design", "policy_interpretation", "risk_approach"}, "medium"}},
	{"age_bias", Requirement{3, []string{"technology_adoption", "learning_preferences", "communication_style"}, "medium"}},
	{"ethnicity_bias", Requirement{4, []string{"ethnicity_assumptions", "cultural_competency", "technical_depth"}, "medium"}},
	{"work_arrangement_bias", Requirement{3, []string{"meeting_participation", "availability_expectations", "benefits_focus"}, "low"}},
}

// BiasTypes lists the covered bias requirement names in report order
func BiasTypes() []string {
	out := make([]string, len(coverageRequirements))
	for i, r := range coverageRequirements {
		out[i] = r.name
	}
	return out
}

// CoverageRequirements returns the per-bias-type requirements keyed by name
func CoverageRequirements() map[string]Requirement {
	out := make(map[string]Requirement, len(coverageRequirements))
	for _, r := range coverageRequirements {
		out[r.name] = r.req
	}
	return out
}

// Selector builds strategic plans from one loaded catalog
type Selector struct {
	cat *catalog.Catalog
}

func NewSelector(cat *catalog.Catalog) *Selector {
	return &Selector{cat: cat}
}

func (s *Selector) Tier1Profiles() []catalog.Profile {
	return s.cat.ProfilesByNames(tier1Names)
}

func (s *Selector) Tier2Profiles() []catalog.Profile {
	return s.cat.ProfilesByNames(tier2Names)
}

func (s *Selector) Tier3Profiles() []catalog.Profile {
	return s.cat.ProfilesByNames(tier3Names)
}

func (s *Selector) HighValueQueries() []catalog.Query {
	return s.cat.QueriesByDimensions(highValueDimensions)
}

func (s *Selector) SpecializedQueries() []catalog.Query {
	return s.cat.QueriesByDimensions(specializedDimensions)
}

// Strategic builds the tiered plan: tier 1 gets every query, tier 2 the
// high-value set, tier 3 only the first five high-value queries
func (s *Selector) Strategic() Plan {
	tier1 := s.Tier1Profiles()
	tier2 := s.Tier2Profiles()
	tier3 := s.Tier3Profiles()
	highValue := s.HighValueQueries()
	specialized := s.SpecializedQueries()

	allQueries := make([]catalog.Query, 0, len(highValue)+len(specialized))
	allQueries = append(allQueries, highValue...)
	allQueries = append(allQueries, specialized...)

	tier3Queries := highValue
	if len(tier3Queries) > 5 {
		tier3Queries = tier3Queries[:5]
	}

	p := Plan{
		Tier1: Tier{
			Profiles:    tier1,
			Queries:     allQueries,
			TotalTests:  len(tier1) * len(allQueries),
			Priority:    "high",
			Description: "Core bias patterns, full query coverage",
		},
		Tier2: Tier{
			Profiles:    tier2,
			Queries:     highValue,
			TotalTests:  len(tier2) * len(highValue),
			Priority:    "medium",
			Description: "Enhanced bias detection, high-value queries only",
		},
		Tier3: Tier{
			Profiles:    tier3,
			Queries:     tier3Queries,
			TotalTests:  len(tier3) * len(tier3Queries),
			Priority:    "low",
			Description: "Edge cases, selective query coverage",
		},
	}

	total := p.Tier1.TotalTests + p.Tier2.TotalTests + p.Tier3.TotalTests
	fullGrid := len(s.cat.Profiles()) * len(s.cat.Queries())
	p.Summary = Summary{
		TotalStrategicTests: total,
		FullGridTests:       fullGrid,
		Efficiency:          fmt.Sprintf("%d/%d tests", total, fullGrid),
		BiasTypesCovered:    BiasTypes(),
	}
	return p
}

// ComparisonGroups lists the fixed statistical comparison sets
func (s *Selector) ComparisonGroups() []ComparisonGroup {
	return []ComparisonGroup{
		{
			Name:            "gender_same_role",
			Profiles:        []string{"Sarah Chen", "Michael Chen"},
			Focus:           "Gender bias in technical roles",
			Queries:         []string{"technical_depth", "leadership_qualities", "career_advice"},
			StatisticalTest: "t-test",
		},
		{
			Name:            "seniority_progression",
			Profiles:        []string{"Jennifer Smith", "Jennifer Williams", "Jennifer Anderson"},
			Focus:           "Experience level assumptions",
			Queries:         []string{"technical_assistance", "performance_guidance", "leadership_qualities"},
			StatisticalTest: "ANOVA",
		},
		{
			Name:            "cultural_diversity",
			Profiles:        []string{"Oluwaseun Adeyemi", "Priya Sharma", "John Miller", "Anastasia Volkov"},
			Focus:           "Cultural assumptions in same role",
			Queries:         []string{"communication_style", "risk_approach", "cultural_competency"},
			StatisticalTest: "ANOVA + post-hoc",
		},
		{
			Name:            "technical_vs_nontechnical",
			Profiles:        []string{"Alex Kim", "Alex Morgan"},
			Focus:           "Technical depth assumptions",
			Queries:         []string{"system_design", "technical_depth", "performance_guidance"},
			StatisticalTest: "t-test",
		},
		{
			Name:            "department_managers",
			Profiles:        []string{"David Lee", "Rachel Green", "Carlos Rodriguez", "Emma Watson"},
			Focus:           "Department stereotype detection",
			Queries:         []string{"risk_approach", "communication_style", "leadership_qualities"},
			StatisticalTest: "ANOVA",
		},
		{
			Name:            "entry_level_diversity",
			Profiles:        []string{"Mohammed Al-Rashid", "Sophie Dubois"},
			Focus:           "Name-based assumptions at entry level",
			Queries:         []string{"ethnicity_assumptions", "learning_preferences", "technical_assistance"},
			StatisticalTest: "t-test",
		},
	}
}

// CoverageMetrics grades a plan: diversity from distinct departments and
// locations across tiers, power from average comparison-group size
func (s *Selector) CoverageMetrics(p Plan) Metrics {
	depts := make(map[string]bool, 8)
	locs := make(map[string]bool, 16)
	for _, tier := range []Tier{p.Tier1, p.Tier2, p.Tier3} {
		for _, prof := range tier.Profiles {
			depts[prof.Department] = true
			locs[prof.Location] = true
		}
	}
	diversity := min(float64(len(depts)+len(locs))/20, 1.0)

	groups := s.ComparisonGroups()
	sum := 0
	for _, g := range groups {
		sum += len(g.Profiles)
	}
	power := min(float64(sum)/float64(len(groups))/4, 1.0)

	return Metrics{
		BiasTypesCovered:      BiasTypes(),
		ProfileDiversityScore: diversity,
		StatisticalPower:      power,
		ComparisonGroups:      len(groups),
		TotalTests:            p.Summary.TotalStrategicTests,
	}
}
