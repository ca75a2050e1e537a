package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/verdanta/verdanta/pkg/errors"
	"github.com/verdanta/verdanta/pkg/logger"
)

// Context is a flat mapping from placeholder token to its already-formatted
// string value. Values are pre-formatted by the producing components; the
// injector performs no inference, only substitution.
type Context map[string]string

// tokenPattern matches {{TOKEN}}-style markers.
var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// DeclaredTokens returns the distinct tokens a template body references.
func DeclaredTokens(body string) []string {
	seen := map[string]struct{}{}
	for _, m := range tokenPattern.FindAllStringSubmatch(body, -1) {
		seen[m[1]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Injector performs global, order-independent token substitution.
type Injector struct {
	// Strict makes injection fail when the template declares a token with
	// no context entry. When false, missing tokens are left literally in
	// the output and logged.
	Strict bool
}

// NewInjector creates an injector with the given missing-token policy.
func NewInjector(strict bool) *Injector {
	return &Injector{Strict: strict}
}

// Inject replaces every occurrence of every context token in the body.
// Tokens do not reference other tokens, so substitution is order-independent.
func (i *Injector) Inject(body string, ctx Context) (string, error) {
	var missing []string
	for _, token := range DeclaredTokens(body) {
		if _, ok := ctx[token]; !ok {
			missing = append(missing, token)
		}
	}

	if len(missing) > 0 {
		if i.Strict {
			return "", errors.New(errors.ErrCodeTemplateInject,
				fmt.Sprintf("template declares tokens with no context entry: %s",
					strings.Join(missing, ", ")))
		}
		logger.Warn("Template tokens left unresolved",
			zap.Strings("tokens", missing),
		)
	}

	return tokenPattern.ReplaceAllStringFunc(body, func(match string) string {
		token := match[2 : len(match)-2]
		if value, ok := ctx[token]; ok {
			return value
		}
		return match
	}), nil
}
