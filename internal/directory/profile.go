package directory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "sjsage522/dirscraper/pkg/errors"
)

// Selector locates one field inside a fragment. Query picks the first
// matching element, Target optionally narrows to a descendant of it, and
// Attr reads an attribute instead of the element text.
type Selector struct {
	Query  string `yaml:"query"`
	Target string `yaml:"target,omitempty"`
	Attr   string `yaml:"attr,omitempty"`
}

// IsZero reports whether the selector is unset
func (s Selector) IsZero() bool {
	return s.Query == ""
}

// Selectors holds one Selector per extracted field
type Selectors struct {
	FullName   Selector `yaml:"full_name"`
	Room       Selector `yaml:"room"`
	PageURL    Selector `yaml:"page_url"`
	Telephone  Selector `yaml:"telephone"`
	Department Selector `yaml:"department"`
	JobTitle   Selector `yaml:"job_title"`
}

// Profile describes how one directory site lays out its employee entries
type Profile struct {
	Name         string    `yaml:"name"`
	URL          string    `yaml:"url"`
	Container    string    `yaml:"container"`
	NameSuffixes []string  `yaml:"name_suffixes,omitempty"`
	Selectors    Selectors `yaml:"selectors"`
}

// Validate checks that the profile can produce the required fields
func (p Profile) Validate() error {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Container == "" {
		missing = append(missing, "container")
	}
	if p.Selectors.FullName.IsZero() {
		missing = append(missing, "selectors.full_name")
	}
	if p.Selectors.PageURL.IsZero() {
		missing = append(missing, "selectors.page_url")
	}
	if len(missing) > 0 {
		return apperrors.NewValidation(p.Name, "profile missing "+strings.Join(missing, ", "))
	}
	return nil
}

func (p Profile) suffixes() []string {
	if p.NameSuffixes == nil {
		return DefaultNameSuffixes
	}
	return p.NameSuffixes
}

// BrightspotProfile builds the selector set shared by sites generated from
// the Brightspot CMS. promo is the class prefix of each entry card (for
// example "PromoVerticalImage") and list the class prefix of the list that
// holds them (for example "ListVerticalImage-items").
func BrightspotProfile(name, url, promo, list string) Profile {
	return Profile{
		Name:      name,
		URL:       url,
		Container: "div." + list + "-item",
		Selectors: Selectors{
			FullName:   Selector{Query: "a[data-cms-ai='0']", Attr: "aria-label"},
			Room:       Selector{Query: "p"},
			PageURL:    Selector{Query: ".Link", Attr: "href"},
			Telephone:  Selector{Query: "." + promo + "-phoneNumber", Target: "a", Attr: "href"},
			Department: Selector{Query: "." + promo + "-groups"},
			JobTitle:   Selector{Query: "." + promo + "-jobTitle"},
		},
	}
}

// Profiles maps profile names to profiles
type Profiles map[string]Profile

// Get returns the named profile
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, apperrors.NewValidation(name, fmt.Sprintf("unknown profile (available: %s)", strings.Join(ps.Names(), ", ")))
	}
	return p, nil
}

// Names returns the profile names in sorted order
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinProfiles returns the directories known out of the box
func BuiltinProfiles() Profiles {
	cs := Profile{
		Name:      "cs",
		URL:       "https://cs.byu.edu/department/directory/faculty-directory/",
		Container: "div.card",
		Selectors: Selectors{
			FullName:   Selector{Query: "div.card-title"},
			Room:       Selector{Query: "p"},
			PageURL:    Selector{Query: "a.btn.accent", Attr: "href"},
			Telephone:  Selector{Query: ".card-phoneNumber", Target: "a", Attr: "href"},
			Department: Selector{Query: ".card-groups"},
			JobTitle:   Selector{Query: ".card-subtitle"},
		},
	}

	profiles := Profiles{
		"religion":   BrightspotProfile("religion", "https://religion.byu.edu/directory", "PromoVerticalImage", "ListVerticalImage-items"),
		"humanities": BrightspotProfile("humanities", "https://hum.byu.edu/directory", "PromoVerticalImage", "ListVerticalImage-items"),
		"history":    BrightspotProfile("history", "https://history.byu.edu/directory", "PromoIconOnTopLarge", "List-items"),
		"cs":         cs,
	}
	return profiles
}

type brightspotLayout struct {
	Promo string `yaml:"promo"`
	List  string `yaml:"list"`
}

type profileEntry struct {
	Profile    `yaml:",inline"`
	Brightspot *brightspotLayout `yaml:"brightspot,omitempty"`
}

type profilesFile struct {
	Profiles []profileEntry `yaml:"profiles"`
}

// LoadProfiles reads extra profiles from a YAML file and merges them over
// base. An entry with a brightspot block starts from BrightspotProfile and
// any explicitly set field overrides the generated one.
func LoadProfiles(path string, base Profiles) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfiguration("failed to read profiles file "+path, err)
	}
	return ParseProfiles(data, base)
}

// ParseProfiles is LoadProfiles on an in-memory document
func ParseProfiles(data []byte, base Profiles) (Profiles, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewConfiguration("failed to parse profiles", err)
	}

	merged := make(Profiles, len(base)+len(file.Profiles))
	for name, p := range base {
		merged[name] = p
	}

	for _, entry := range file.Profiles {
		p := entry.Profile
		if entry.Brightspot != nil {
			p = overlay(BrightspotProfile(entry.Name, entry.URL, entry.Brightspot.Promo, entry.Brightspot.List), entry.Profile)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		merged[p.Name] = p
	}
	return merged, nil
}

func overlay(p, o Profile) Profile {
	if o.Container != "" {
		p.Container = o.Container
	}
	if o.NameSuffixes != nil {
		p.NameSuffixes = o.NameSuffixes
	}
	fields := []struct{ dst, src *Selector }{
		{&p.Selectors.FullName, &o.Selectors.FullName},
		{&p.Selectors.Room, &o.Selectors.Room},
		{&p.Selectors.PageURL, &o.Selectors.PageURL},
		{&p.Selectors.Telephone, &o.Selectors.Telephone},
		{&p.Selectors.Department, &o.Selectors.Department},
		{&p.Selectors.JobTitle, &o.Selectors.JobTitle},
	}
	for _, f := range fields {
		if !f.src.IsZero() {
			*f.dst = *f.src
		}
	}
	return p
}
