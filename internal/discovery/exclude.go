package discovery

import (
	"fmt"
	"regexp"
	"strings"
)

// GlobToRegexp converts a glob-like pattern to an anchored regular expression.
// "**" matches any run of characters, "*" matches within one path segment and
// every other character is literal.
func GlobToRegexp(pattern string) (*regexp.Regexp, error) {
	doubles := strings.Split(pattern, "**")
	for i, part := range doubles {
		singles := strings.Split(part, "*")
		for j, s := range singles {
			singles[j] = regexp.QuoteMeta(s)
		}
		doubles[i] = strings.Join(singles, "[^/]*")
	}
	return regexp.Compile("^" + strings.Join(doubles, ".*") + "$")
}

// CompileExcludes builds an exclusion predicate over absolute paths.
// It returns nil when there are no patterns.
func CompileExcludes(patterns []string) (func(path string) bool, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := GlobToRegexp(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		regexes = append(regexes, re)
	}

	return func(path string) bool {
		for _, re := range regexes {
			if re.MatchString(path) {
				return true
			}
		}
		return false
	}, nil
}
