// Package template maps requested document variants to template resources
// and performs exhaustive placeholder substitution.
package template

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verdanta/verdanta/pkg/errors"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Canonical template variant identifiers. The set is closed: every variant
// is backed by exactly one template resource.
const (
	VariantLCA           = "lca"
	VariantComprehensive = "sustainability-comprehensive"
	VariantCarbonFocused = "carbon-focused"
	VariantCompliance    = "compliance-basic"
	VariantStakeholder   = "stakeholder-engagement"
)

// variantAliases maps recognized synonyms onto the canonical set.
var variantAliases = map[string]string{
	VariantLCA:           VariantLCA,
	"lca-report":         VariantLCA,
	VariantComprehensive: VariantComprehensive,
	"comprehensive":      VariantComprehensive,
	"full":               VariantComprehensive,
	VariantCarbonFocused: VariantCarbonFocused,
	"carbon":             VariantCarbonFocused,
	VariantCompliance:    VariantCompliance,
	"compliance":         VariantCompliance,
	VariantStakeholder:   VariantStakeholder,
	"stakeholder":        VariantStakeholder,
}

// SupportedVariants returns the canonical variant set, sorted.
func SupportedVariants() []string {
	set := map[string]struct{}{}
	for _, canonical := range variantAliases {
		set[canonical] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Selector maps a requested variant name to its template body. When a
// template directory is configured it overrides the embedded resources,
// enabling test isolation and multiple concurrent configurations.
type Selector struct {
	templateDir string
}

// NewSelector creates a selector. An empty dir means embedded templates only.
func NewSelector(templateDir string) *Selector {
	return &Selector{templateDir: templateDir}
}

// Canonical resolves a variant name or alias to its canonical identifier.
// Unknown identifiers fail with an error naming the supported set; this is
// the selector's only failure mode.
func (s *Selector) Canonical(variant string) (string, error) {
	canonical, ok := variantAliases[strings.ToLower(strings.TrimSpace(variant))]
	if !ok {
		return "", errors.New(errors.ErrCodeTemplateUnknown,
			fmt.Sprintf("unsupported template variant %q; supported variants: %s",
				variant, strings.Join(SupportedVariants(), ", ")))
	}
	return canonical, nil
}

// Template returns the template body for a variant name or alias.
func (s *Selector) Template(variant string) (string, error) {
	canonical, err := s.Canonical(variant)
	if err != nil {
		return "", err
	}

	if s.templateDir != "" {
		data, err := os.ReadFile(filepath.Join(s.templateDir, canonical+".html"))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeTemplateMissing,
				fmt.Sprintf("template resource for variant %q not found in %s", canonical, s.templateDir), err)
		}
		return string(data), nil
	}

	data, err := embeddedTemplates.ReadFile("templates/" + canonical + ".html")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplateMissing,
			fmt.Sprintf("embedded template resource for variant %q not found", canonical), err)
	}
	return string(data), nil
}
