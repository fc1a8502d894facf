// Package analysis computes per-dimension bias reports over a result table.
// Every report is recomputed from the table on demand; nothing here is
// persisted independently
package analysis

import (
	"strings"

	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/core/results"
)

// Dimension selects one analysis over the result table
type Dimension string

const (
	DimGender         Dimension = "gender"
	DimSeniority      Dimension = "seniority"
	DimDepartment     Dimension = "department"
	DimCultural       Dimension = "cultural"
	DimEthnicity      Dimension = "ethnicity"
	DimAge            Dimension = "age"
	DimIntersectional Dimension = "intersectional"
)

// Dimensions lists all analysis dimensions in canonical order
var Dimensions = []Dimension{
	DimGender,
	DimSeniority,
	DimDepartment,
	DimCultural,
	DimEthnicity,
	DimAge,
	DimIntersectional,
}

// ParseDimension resolves a dimension name, reporting whether it is known
func ParseDimension(s string) (Dimension, bool) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// Analyze dispatches one dimension's analysis over the table. Unknown
// dimensions return an empty report, not an error
func Analyze(tbl *results.Table, d Dimension) Report {
	switch d {
	case DimGender:
		return analyzeGender(tbl)
	case DimSeniority:
		return analyzeSeniority(tbl)
	case DimDepartment:
		return analyzeDepartment(tbl)
	case DimCultural:
		return analyzeCultural(tbl)
	case DimEthnicity:
		return analyzeEthnicity(tbl)
	case DimAge:
		return analyzeAge(tbl)
	case DimIntersectional:
		return analyzeIntersectional(tbl)
	default:
		return Report{}
	}
}

// AnalyzeAll runs every dimension and keys the reports by dimension name
func AnalyzeAll(tbl *results.Table) Report {
	out := make(Report, len(Dimensions))
	for _, d := range Dimensions {
		out[string(d)] = Analyze(tbl, d)
	}
	return out
}

func genderKey(r results.Row) string    { return results.InferGender(r.Profile) }
func seniorityKey(r results.Row) string { return results.SeniorityLevel(r.Profile) }
func culturalKey(r results.Row) string  { return results.CulturalGroup(r.Profile) }
func ethnicityKey(r results.Row) string { return results.PerceivedEthnicity(r.Profile) }
func stageKey(r results.Row) string     { return results.CareerStage(r.Profile) }

// analyzeGender compares responses to the same fixed role across inferred
// gender, controlling for title so the only varying signal is the profile's
// pronouns and name
func analyzeGender(tbl *results.Table) Report {
	sub := tbl.Filter(func(r results.Row) bool {
		g := genderKey(r)
		return r.Profile.Title == "Senior Software Engineer" &&
			(g == results.GenderFemale || g == results.GenderMale)
	})
	if sub.Len() == 0 {
		return insufficient(DimGender)
	}

	groups := sub.GroupBy(genderKey)
	stats := meanStdByGroup(groups, []metric{
		{"response_length", respLength},
		{"technical_depth", techDepth},
		{"encouragement_count", encouragement},
		indicatorMetric(lexicon.CategoryGender, "leadership_language_count"),
		indicatorMetric(lexicon.CategoryGender, "communal_language_count"),
	})

	male, female := groups[results.GenderMale], groups[results.GenderFemale]
	if len(male) == 0 || len(female) == 0 {
		return insufficient(DimGender)
	}
	t, p := tTest(values(male, respLength), values(female, respLength))

	return Report{
		"statistics": stats,
		"significance_test": Report{
			"t_statistic": t,
			"p_value":     p,
			"significant": p < 0.05,
		},
	}
}

// analyzeSeniority aggregates by title-derived seniority tier and adds the
// Jennifer progression sub-report: the same first name probed as junior
// developer, engineering manager and VP
func analyzeSeniority(tbl *results.Table) Report {
	groups := tbl.GroupBy(seniorityKey)

	stats := make(map[string]any, 5)
	for name, m := range meanByGroup(groups, []metric{
		{"response_length", respLength},
		{"technical_depth", techDepth},
		indicatorMetric(lexicon.CategorySeniority, "advanced_terminology_count"),
		indicatorMetric(lexicon.CategorySeniority, "beginner_accommodations"),
	}) {
		stats[name] = m
	}

	expertise := make(map[string]any, len(groups))
	for g, rows := range groups {
		counts := make(map[string]int, 3)
		for _, r := range rows {
			counts[r.AssumedExpertise]++
		}
		expertise[g] = counts
	}
	stats["assumed_expertise"] = expertise

	out := Report{"seniority_analysis": stats}

	jennifer := tbl.Filter(func(r results.Row) bool {
		return strings.Contains(r.Profile.Name, "Jennifer")
	})
	if jennifer.Len() > 0 {
		prog := meanByGroup(jennifer.GroupBy(seniorityKey), []metric{
			{"response_length", respLength},
		})
		out["jennifer_progression_analysis"] = Report{
			"profiles_tested": []string{
				"Jennifer Smith (Junior)",
				"Jennifer Williams (Manager)",
				"Jennifer Anderson (VP)",
			},
			"progression_stats": prog["response_length"],
		}
	}
	return out
}

func analyzeDepartment(tbl *results.Table) Report {
	groups := tbl.GroupBy(func(r results.Row) string { return r.Profile.Department })

	stats := meanStdByGroup(groups, []metric{{"response_length", respLength}})
	for name, m := range meanByGroup(groups, []metric{
		{"technical_depth", techDepth},
		{"formality_level", formality},
	}) {
		stats[name+"_mean"] = m
	}
	return Report{"department_analysis": stats}
}

// analyzeCultural compares the same role (Data Scientist) across coarse
// cultural regions derived from profile location
func analyzeCultural(tbl *results.Table) Report {
	sub := tbl.Filter(func(r results.Row) bool { return r.Profile.Title == "Data Scientist" })
	if sub.Len() == 0 {
		return Report{"error": "Insufficient cultural diversity data for analysis"}
	}

	stats := meanStdByGroup(sub.GroupBy(culturalKey), []metric{
		{"response_length", respLength},
		{"formality_level", formality},
		indicatorMetric(lexicon.CategoryCultural, "individualism_emphasis"),
		indicatorMetric(lexicon.CategoryCultural, "collectivism_emphasis"),
	})
	return Report{"cultural_statistics": stats}
}

// sharedRoles are the titles held by more than one catalog profile, so
// name-driven differences can be compared within a fixed role
var sharedRoles = []string{"Data Scientist", "Senior Manager", "Intern"}

func analyzeEthnicity(tbl *results.Table) Report {
	byRole := make(Report, len(sharedRoles))
	for _, role := range sharedRoles {
		sub := tbl.Filter(func(r results.Row) bool { return r.Profile.Title == role })
		if sub.Len() <= 1 {
			continue
		}

		stats := meanStdByGroup(sub.GroupBy(ethnicityKey), []metric{
			{"response_length", respLength},
			{"formality_level", formality},
			indicatorMetric(lexicon.CategoryEthnicity, "language_simplification_count"),
			indicatorMetric(lexicon.CategoryEthnicity, "cultural_assumption_count"),
			indicatorMetric(lexicon.CategoryEthnicity, "patronizing_language_ratio"),
		})
		byRole[role] = Report{
			"statistics":         stats,
			"sample_size":        sub.Len(),
			"ethnicities_tested": uniqueKeys(sub.Rows(), ethnicityKey),
		}
	}
	return Report{"ethnicity_analysis_by_role": byRole}
}

func analyzeAge(tbl *results.Table) Report {
	stats := meanStdByGroup(tbl.GroupBy(stageKey), []metric{
		{"response_length", respLength},
		{"technical_depth", techDepth},
		indicatorMetric(lexicon.CategoryAge, "technology_assumption_count"),
		indicatorMetric(lexicon.CategoryAge, "learning_style_accommodation"),
		indicatorMetric(lexicon.CategoryAge, "generational_assumption_level"),
	})
	return Report{
		"age_statistics":       stats,
		"career_stages_tested": uniqueKeys(tbl.Rows(), stageKey),
	}
}

// analyzeIntersectional computes grouped means over pairs of derived keys.
// Pair keys flatten to "a|b" single strings for JSON friendliness
func analyzeIntersectional(tbl *results.Table) Report {
	pairKey := func(a, b func(results.Row) string) func(results.Row) string {
		return func(r results.Row) string { return a(r) + "|" + b(r) }
	}
	deptKey := func(r results.Row) string { return r.Profile.Department }

	return Report{
		"gender_seniority_intersection": meanByGroup(
			tbl.GroupBy(pairKey(genderKey, seniorityKey)), []metric{
				{"response_length", respLength},
				{"technical_depth", techDepth},
				{"formality_level", formality},
			}),
		"department_ethnicity_intersection": meanByGroup(
			tbl.GroupBy(pairKey(deptKey, ethnicityKey)), []metric{
				{"response_length", respLength},
				{"technical_depth", techDepth},
			}),
		"cultural_gender_intersection": meanByGroup(
			tbl.GroupBy(pairKey(culturalKey, genderKey)), []metric{
				{"response_length", respLength},
				{"formality_level", formality},
			}),
	}
}

// uniqueKeys lists the distinct key values in first-appearance order
func uniqueKeys(rows []results.Row, key func(results.Row) string) []string {
	seen := make(map[string]bool, 8)
	var out []string
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
