// Package matching evaluates Match conditions against tree nodes.
//
// Wildcard modes compile to gobwas/glob globs and regex modes to regexp2
// expressions. Compiled patterns are cached per mode and pattern. A pattern
// that fails to compile is logged once and never matches.
package matching

import (
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// Lookup resolves a match id.
type Lookup func(id string) (types.Match, bool)

type predicate func(subject string) bool

type cacheKey struct {
	mode    types.ComparisonMode
	pattern string
}

type compiled struct {
	test predicate
	err  error
}

// Matcher tests nodes against matches. It is safe for concurrent use.
type Matcher struct {
	mu           sync.RWMutex
	cache        map[cacheKey]compiled
	regexTimeout time.Duration
	logger       zerolog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithRegexTimeout bounds each regex evaluation. Zero means no bound.
func WithRegexTimeout(d time.Duration) Option {
	return func(m *Matcher) { m.regexTimeout = d }
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		cache:  make(map[cacheKey]compiled),
		logger: logging.GetLogger("matching"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Matches reports whether node satisfies any condition of match. Nodes of
// the wrong kind never match.
func (m *Matcher) Matches(node tree.Node, match types.Match) bool {
	_, ok := m.MatchingCondition(node, match)
	return ok
}

// MatchingCondition returns the first condition of match that node satisfies.
func (m *Matcher) MatchingCondition(node tree.Node, match types.Match) (types.Condition, bool) {
	if !match.Target.Accepts(node.Kind) {
		return types.Condition{}, false
	}
	for _, cond := range match.Conditions {
		if m.test(match.Mode, cond.Value, node) {
			return cond, true
		}
	}
	return types.Condition{}, false
}

// MatchesAny ORs Matches over refs. Unresolved refs never match.
func (m *Matcher) MatchesAny(node tree.Node, refs []string, lookup Lookup) bool {
	for _, ref := range refs {
		match, ok := lookup(ref)
		if !ok {
			continue
		}
		if m.Matches(node, match) {
			return true
		}
	}
	return false
}

// Validate compiles every condition of match and reports the first failure.
func (m *Matcher) Validate(match types.Match) error {
	if !match.Mode.ValidFor(match.Target) {
		return errors.Newf(errors.ErrInvalidInput, "mode %q is not valid for %s matches", match.Mode, match.Target)
	}
	for _, cond := range match.Conditions {
		if c := m.compile(match.Mode, cond.Value); c.err != nil {
			return c.err
		}
	}
	return nil
}

func (m *Matcher) test(mode types.ComparisonMode, pattern string, node tree.Node) bool {
	c := m.compile(mode, pattern)
	if c.err != nil {
		return false
	}
	switch mode {
	case types.PathWildcard, types.PathRegex:
		return c.test(node.Path)
	default:
		return c.test(node.Name)
	}
}

func (m *Matcher) compile(mode types.ComparisonMode, pattern string) compiled {
	key := cacheKey{mode: mode, pattern: pattern}

	m.mu.RLock()
	c, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return c
	}

	test, err := m.build(mode, pattern)
	if err != nil {
		err = errors.Wrapf(err, errors.ErrPatternInvalid, "invalid %s pattern %q", mode, pattern)
		m.logger.Warn().
			Err(err).
			Str("mode", string(mode)).
			Str("pattern", pattern).
			Msg("Pattern does not compile, condition will never match")
	}
	c = compiled{test: test, err: err}

	m.mu.Lock()
	m.cache[key] = c
	m.mu.Unlock()
	return c
}

func (m *Matcher) build(mode types.ComparisonMode, pattern string) (predicate, error) {
	switch mode {
	case types.NameSubstring:
		needle := strings.ToLower(pattern)
		return func(s string) bool {
			return strings.Contains(strings.ToLower(s), needle)
		}, nil

	case types.SuffixExact:
		suffix := strings.ToLower(pattern)
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		return func(s string) bool {
			return strings.HasSuffix(strings.ToLower(s), suffix)
		}, nil

	case types.NameWildcard:
		g, err := glob.Compile(wildcardToGlob(pattern))
		if err != nil {
			return nil, err
		}
		return func(s string) bool { return g.Match(strings.ToLower(s)) }, nil

	case types.PathWildcard:
		return compilePathGlob(pattern)

	case types.NameRegex, types.PathRegex:
		re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
		if err != nil {
			return nil, err
		}
		if m.regexTimeout > 0 {
			re.MatchTimeout = m.regexTimeout
		}
		return func(s string) bool {
			ok, err := re.MatchString(s)
			if err != nil {
				m.logger.Warn().Err(err).Str("pattern", pattern).Str("subject", s).Msg("Regex evaluation failed")
				return false
			}
			return ok
		}, nil
	}

	return nil, errors.Newf(errors.ErrInvalidInput, "unknown comparison mode %q", mode)
}

// compilePathGlob matches a path glob anywhere below the roots unless the
// pattern starts with "/", in which case it must match the whole path.
func compilePathGlob(pattern string) (predicate, error) {
	anchored := strings.HasPrefix(pattern, "/")
	p := wildcardToGlob(strings.TrimPrefix(pattern, "/"))

	whole, err := glob.Compile(p, '/')
	if err != nil {
		return nil, err
	}
	if anchored {
		return func(s string) bool { return whole.Match(strings.ToLower(s)) }, nil
	}

	floating, err := glob.Compile("**/"+p, '/')
	if err != nil {
		return nil, err
	}
	return func(s string) bool {
		s = strings.ToLower(s)
		return whole.Match(s) || floating.Match(s)
	}, nil
}

// wildcardToGlob lowercases pattern and escapes every glob metacharacter
// except * and ?.
func wildcardToGlob(pattern string) string {
	var b strings.Builder
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			b.WriteString(glob.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}
	for _, r := range strings.ToLower(pattern) {
		if r == '*' || r == '?' {
			flush()
			b.WriteRune(r)
			continue
		}
		literal.WriteRune(r)
	}
	flush()
	return b.String()
}
