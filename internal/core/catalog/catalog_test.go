package catalog

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(c.Profiles()) != 24 {
		t.Fatalf("profiles = %d, want 24", len(c.Profiles()))
	}
	if len(c.Queries()) != 18 {
		t.Fatalf("queries = %d, want 18", len(c.Queries()))
	}

	// every profile passes field validation implicitly via Load; spot check data
	p, ok := c.ProfileByName("Sarah Chen")
	if !ok {
		t.Fatalf("Sarah Chen missing")
	}
	if p.Title != "Senior Software Engineer" || p.Pronouns != "she/her" || p.YearsAtCompany != 4 {
		t.Fatalf("Sarah Chen fields wrong: %+v", p)
	}

	q, ok := c.QueryByDimension("technical_depth")
	if !ok {
		t.Fatalf("technical_depth query missing")
	}
	if !strings.Contains(q.Text, "OAuth2") {
		t.Fatalf("technical_depth query text wrong: %q", q.Text)
	}
}

func TestProfileContext(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	p, _ := c.ProfileByName("Sarah Chen")
	ctx := p.Context()
	for _, want := range []string{
		"User: Sarah Chen",
		"Title: Senior Software Engineer",
		"Department: Engineering",
		"Email: sarah.chen@gett.com",
		"Location: Tel Aviv",
		"Years at Gett: 4",
		"Pronouns: she/her",
	} {
		if !strings.Contains(ctx, want) {
			t.Fatalf("context missing %q:\n%s", want, ctx)
		}
	}

	// pronoun line is omitted entirely when unset
	jp, _ := c.ProfileByName("John Miller")
	if strings.Contains(jp.Context(), "Pronouns") {
		t.Fatalf("context should omit empty pronouns:\n%s", jp.Context())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	ps := c.Profiles()
	ps[0].Name = "Mutated"
	if again := c.Profiles(); again[0].Name == "Mutated" {
		t.Fatalf("Profiles() leaked internal slice")
	}

	qs := c.Queries()
	qs[0].Dimension = "mutated"
	if again := c.Queries(); again[0].Dimension == "mutated" {
		t.Fatalf("Queries() leaked internal slice")
	}
}

func TestSubsetLookups(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	got := c.ProfilesByNames([]string{"Michael Chen", "Sarah Chen", "Nobody"})
	if len(got) != 2 {
		t.Fatalf("ProfilesByNames len = %d, want 2", len(got))
	}
	// catalog order, not request order
	if got[0].Name != "Sarah Chen" || got[1].Name != "Michael Chen" {
		t.Fatalf("ProfilesByNames order wrong: %v, %v", got[0].Name, got[1].Name)
	}

	qs := c.QueriesByDimensions([]string{"factual_information", "career_advice"})
	if len(qs) != 2 {
		t.Fatalf("QueriesByDimensions len = %d, want 2", len(qs))
	}
	if qs[0].Dimension != "career_advice" {
		t.Fatalf("QueriesByDimensions order wrong: %v", qs[0].Dimension)
	}

	if _, ok := c.ProfileByName("Nobody"); ok {
		t.Fatalf("ProfileByName should miss unknown name")
	}
	if _, ok := c.QueryByDimension("nope"); ok {
		t.Fatalf("QueryByDimension should miss unknown dimension")
	}
}

func TestWorkArrangementEnumPopulated(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	remote := 0
	office := 0
	for _, p := range c.Profiles() {
		switch p.WorkArrangement {
		case "remote":
			remote++
		case "office":
			office++
		case "", "hybrid":
		default:
			t.Fatalf("unexpected work_arrangement %q for %s", p.WorkArrangement, p.Name)
		}
	}
	if remote == 0 || office == 0 {
		t.Fatalf("expected both remote and office profiles (remote=%d office=%d)", remote, office)
	}
}
