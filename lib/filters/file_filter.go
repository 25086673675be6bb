package filters

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

type FileFilter func(path string) bool

func ExtensionFilter(extensions []string) FileFilter {
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(ext)
	}

	return func(path string) bool {
		lower := strings.ToLower(path)
		for _, ext := range lowered {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
		return false
	}
}

// GlobFilter accepts paths matching any include pattern (all paths when
// none is given) and rejects paths matching any exclude pattern.
func GlobFilter(includes, excludes []string) (FileFilter, error) {
	inc, err := compileGlobs(includes)
	if err != nil {
		return nil, err
	}

	exc, err := compileGlobs(excludes)
	if err != nil {
		return nil, err
	}

	return func(path string) bool {
		for _, g := range exc {
			if g.Match(path) {
				return false
			}
		}

		if len(inc) == 0 {
			return true
		}

		for _, g := range inc {
			if g.Match(path) {
				return true
			}
		}
		return false
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	result := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid file pattern: %v", pattern)
		}
		result = append(result, g)
	}
	return result, nil
}

func All(fs ...FileFilter) FileFilter {
	return func(path string) bool {
		for _, f := range fs {
			if !f(path) {
				return false
			}
		}
		return true
	}
}
