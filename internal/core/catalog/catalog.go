// Package catalog loads the embedded synthetic personas and probe queries
// from catalog.json. The catalog is static fixture data: loaded once,
// validated, and handed out as copies so callers cannot mutate it
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//go:embed catalog.json
var embedded []byte

// Profile is a synthetic employee persona used to probe the assistant
type Profile struct {
	Name            string `json:"name"                       validate:"required"`
	Title           string `json:"title"                      validate:"required"`
	Department      string `json:"department"                 validate:"required"`
	Email           string `json:"email"                      validate:"required,email"`
	Location        string `json:"location"                   validate:"required"`
	YearsAtCompany  int    `json:"years_at_company"           validate:"gte=0"`
	Pronouns        string `json:"pronouns,omitempty"`
	WorkArrangement string `json:"work_arrangement,omitempty" validate:"omitempty,oneof=remote office hybrid"`
}

// Context renders the profile as the user-context block injected into the
// personalized system prompt
func (p Profile) Context() string {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s\n", p.Name)
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Department: %s\n", p.Department)
	fmt.Fprintf(&b, "Email: %s\n", p.Email)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Years at Gett: %d", p.YearsAtCompany)
	if p.Pronouns != "" {
		fmt.Fprintf(&b, "\nPronouns: %s", p.Pronouns)
	}
	return b.String()
}

// Query is a probe question tagged with the bias dimension it targets
type Query struct {
	Text              string `json:"query"          validate:"required"`
	Dimension         string `json:"bias_dimension" validate:"required"`
	ExpectedVariation string `json:"expected_variation"`
}

type rawCatalogV1 struct {
	Version  int       `json:"version"`
	Profiles []Profile `json:"profiles" validate:"required,min=1,dive"`
	Queries  []Query   `json:"queries"  validate:"required,min=1,dive"`
}

// Catalog holds the loaded fixture set
type Catalog struct {
	profiles []Profile
	queries  []Query
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		validate = v
	})
	return validate
}

// Load parses and validates the embedded catalog.json
func Load() (*Catalog, error) {
	var rc rawCatalogV1
	if err := json.Unmarshal(embedded, &rc); err != nil {
		return nil, fmt.Errorf("catalog: parse catalog.json: %w", err)
	}
	if rc.Version != 1 {
		return nil, fmt.Errorf("catalog: unsupported catalog.json version %d (want 1)", rc.Version)
	}
	if err := validatorInstance().Struct(rc); err != nil {
		return nil, fmt.Errorf("catalog: validate catalog.json: %w", err)
	}

	// profile names and query dimensions must be unique; lookups key off them
	seenName := make(map[string]struct{}, len(rc.Profiles))
	for _, p := range rc.Profiles {
		if _, dup := seenName[p.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate profile name %q", p.Name)
		}
		seenName[p.Name] = struct{}{}
	}
	seenDim := make(map[string]struct{}, len(rc.Queries))
	for _, q := range rc.Queries {
		if _, dup := seenDim[q.Dimension]; dup {
			return nil, fmt.Errorf("catalog: duplicate query dimension %q", q.Dimension)
		}
		seenDim[q.Dimension] = struct{}{}
	}

	return &Catalog{profiles: rc.Profiles, queries: rc.Queries}, nil
}

// Profiles returns a copy of all profiles in catalog order
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Queries returns a copy of all queries in catalog order
func (c *Catalog) Queries() []Query {
	out := make([]Query, len(c.queries))
	copy(out, c.queries)
	return out
}

// ProfileByName returns the named profile, if present
func (c *Catalog) ProfileByName(name string) (Profile, bool) {
	for _, p := range c.profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// QueryByDimension returns the query targeting the given bias dimension
func (c *Catalog) QueryByDimension(dim string) (Query, bool) {
	for _, q := range c.queries {
		if q.Dimension == dim {
			return q, true
		}
	}
	return Query{}, false
}

// ProfilesByNames returns the subset of profiles whose names appear in names,
// preserving catalog order. Unknown names are skipped
func (c *Catalog) ProfilesByNames(names []string) []Profile {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var out []Profile
	for _, p := range c.profiles {
		if _, ok := want[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}

// QueriesByDimensions returns the subset of queries whose dimensions appear in
// dims, preserving catalog order. Unknown dimensions are skipped
func (c *Catalog) QueriesByDimensions(dims []string) []Query {
	want := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		want[d] = struct{}{}
	}
	var out []Query
	for _, q := range c.queries {
		if _, ok := want[q.Dimension]; ok {
			out = append(out, q)
		}
	}
	return out
}
