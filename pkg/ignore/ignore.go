// Package ignore matches slash-separated relative paths against
// gitignore-style exclusion patterns.
package ignore

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-directory ignore file consulted during directory expansion.
const FileName = ".pdfjoinignore"

// Precompiled regular expressions used in pattern translation.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
)

// Pattern is one compiled ignore rule.
type Pattern struct {
	Regexp  *regexp.Regexp // Compiled expression matched against the relative path.
	Negate  bool           // The rule starts with '!' and re-includes matches.
	DirOnly bool           // The rule ends with '/' and only matches directories.
	Line    string         // Original rule text.
	Source  string         // File the rule came from, empty for inline rules.
}

// Matcher holds an ordered list of rules. Later rules override earlier ones.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len returns the number of compiled rules.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// AddLines compiles rules and appends them to the matcher. Blank lines and
// comments are skipped.
func (m *Matcher) AddLines(lines ...string) {
	m.add("", lines)
}

// AddFile reads rules from path. A missing file is not an error.
func (m *Matcher) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(string(content), "\n")
	m.add(path, lines)
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

// Clone returns a matcher with the same rules that can be extended independently.
func (m *Matcher) Clone() *Matcher {
	c := &Matcher{logger: m.logger, patterns: make([]*Pattern, len(m.patterns))}
	copy(c.patterns, m.patterns)
	return c
}

// Match reports whether the relative path is excluded.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	matched, _ := m.MatchWithPattern(relPath, isDir)
	return matched
}

// MatchWithPattern is Match that also returns the deciding rule, if any.
func (m *Matcher) MatchWithPattern(relPath string, isDir bool) (bool, *Pattern) {
	rel := strings.TrimPrefix(filepath.ToSlash(relPath), "./")

	var decided *Pattern
	matched := false
	for _, p := range m.patterns {
		var hit bool
		if p.DirOnly && !isDir {
			hit = matchesParent(p.Regexp, rel)
		} else {
			hit = p.Regexp.MatchString(rel)
		}
		if hit {
			decided = p
			matched = !p.Negate
		}
	}
	return matched, decided
}

// matchesParent reports whether re matches any ancestor directory of file.
func matchesParent(re *regexp.Regexp, file string) bool {
	for dir := path.Dir(file); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if re.MatchString(dir) {
			return true
		}
	}
	return false
}

func (m *Matcher) add(source string, lines []string) {
	for _, line := range lines {
		p := compile(line)
		if p == nil {
			continue
		}
		p.Source = source
		m.patterns = append(m.patterns, p)
	}
}

// compile turns a single rule into a Pattern, or nil for blanks, comments and
// rules that do not compile.
func compile(line string) *Pattern {
	rule := strings.TrimSpace(line)
	if rule == "" || strings.HasPrefix(rule, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(rule, "!") {
		negate = true
		rule = rule[1:]
	}
	if strings.HasPrefix(rule, `\#`) || strings.HasPrefix(rule, `\!`) {
		rule = rule[1:]
	}

	dirOnly := strings.HasSuffix(rule, "/")
	rule = strings.TrimSuffix(rule, "/")

	anchored := strings.HasPrefix(rule, "/") || strings.Contains(rule, "/")
	rule = strings.TrimPrefix(rule, "/")
	if rule == "" {
		return nil
	}

	expr := regexp.QuoteMeta(rule)
	expr = strings.ReplaceAll(expr, `\*`, "*")
	expr = strings.ReplaceAll(expr, `\?`, "?")
	expr = doubleStarMiddle.ReplaceAllString(expr, `\x00M`)
	expr = doubleStarTrailing.ReplaceAllString(expr, `\x00T`)
	expr = doubleStarLeading.ReplaceAllString(expr, `\x00L`)
	expr = strings.ReplaceAll(expr, "**", `\x00S`)
	expr = strings.ReplaceAll(expr, "*", `[^/]*`)
	expr = strings.ReplaceAll(expr, "?", `[^/]`)
	expr = strings.NewReplacer(
		`\x00M`, `(/|/.+/)`,
		`\x00T`, `(/.*)?`,
		`\x00L`, `(.*/)?`,
		`\x00S`, `.*`,
	).Replace(expr)

	if anchored {
		expr = "^" + expr + "(/.*)?$"
	} else {
		expr = "^(.*/)?" + expr + "(/.*)?$"
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return &Pattern{Regexp: re, Negate: negate, DirOnly: dirOnly, Line: line}
}
