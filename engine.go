package jsoninja

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// DefaultPattern recognizes {{name}} placeholders, with an
// optional single space of padding inside the braces.
const DefaultPattern = `\{\{ ?([a-zA-Z0-9_]+) ?\}\}`

var defaultRegex = regexp.MustCompile(DefaultPattern)

// Engine substitutes placeholder variables in JSON-shaped
// structures. An Engine is stateless apart from its
// compiled variable pattern and may be shared across
// goroutines.
type Engine struct {
	// KeepMissing preserves placeholders whose variable
	// has no entry in the replacement table instead of
	// failing the call.
	KeepMissing bool

	regex    *regexp.Regexp
	fastTags bool
}

// New returns an engine using DefaultPattern.
func New() *Engine {
	return &Engine{regex: defaultRegex, fastTags: true}
}

// NewWithPattern returns an engine using a custom variable
// pattern. The pattern must compile and contain exactly
// one capturing group identifying the variable name. An
// empty pattern selects DefaultPattern.
func NewWithPattern(variablePattern string) (*Engine, error) {
	const errCtx = "compiling variable pattern"

	if variablePattern == "" {
		return New(), nil
	}

	re, err := regexp.Compile(variablePattern)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrInvalidPattern, err,
		)
	}

	return NewWithRegexp(re)
}

// NewWithRegexp returns an engine using an already
// compiled variable pattern with exactly one capturing
// group.
func NewWithRegexp(re *regexp.Regexp) (*Engine, error) {
	const errCtx = "checking variable pattern"

	if n := re.NumSubexp(); n != 1 {
		return nil, fmt.Errorf(
			"%s: %q has %d capturing groups: %w",
			errCtx, re.String(), n, ErrInvalidPattern,
		)
	}

	return &Engine{
		regex:    re,
		fastTags: re.String() == DefaultPattern,
	}, nil
}

// Replace walks the template and substitutes every
// recognized placeholder in string values and mapping
// keys, returning a newly built structure. The input is
// never mutated.
//
// Mapping nodes are traversed in sorted key order, each
// key before its value, and sequence nodes in index order,
// so producer side effects happen in a deterministic
// order. Each placeholder occurrence resolves
// independently: a producer referenced three times runs
// three times.
func (en *Engine) Replace(
	template interface{},
	replacements map[string]interface{},
) (interface{}, error) {
	const errCtx = "replacing variables"

	if emptyTemplate(template) {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrEmptyTemplate,
		)
	}

	out, err := en.walk(template, replacements, "$")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// emptyTemplate reports whether the template carries no
// nodes at all.
func emptyTemplate(template interface{}) bool {
	switch node := template.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(node) == 0
	case []interface{}:
		return len(node) == 0
	default:
		return false
	}
}

// walk dispatches on the node kind. Mappings and sequences
// recurse, strings are scanned for placeholders, and every
// other scalar passes through unchanged.
func (en *Engine) walk(
	node interface{},
	replacements map[string]interface{},
	path string,
) (interface{}, error) {
	switch val := node.(type) {
	case map[string]interface{}:
		return en.walkMapping(val, replacements, path)
	case []interface{}:
		return en.walkSequence(val, replacements, path)
	case string:
		return en.replaceString(val, replacements, path)
	default:
		return val, nil
	}
}

func (en *Engine) walkMapping(
	node map[string]interface{},
	replacements map[string]interface{},
	path string,
) (interface{}, error) {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make(map[string]interface{}, len(node))

	for _, key := range keys {
		childPath := path + "." + key

		newKey, err := en.replaceKey(
			key, replacements, childPath,
		)
		if err != nil {
			return nil, err
		}

		value, err := en.walk(
			node[key], replacements, childPath,
		)
		if err != nil {
			return nil, err
		}

		out[newKey] = value
	}

	return out, nil
}

func (en *Engine) walkSequence(
	node []interface{},
	replacements map[string]interface{},
	path string,
) (interface{}, error) {
	out := make([]interface{}, len(node))

	for idx, child := range node {
		value, err := en.walk(
			child,
			replacements,
			fmt.Sprintf("%s[%d]", path, idx),
		)
		if err != nil {
			return nil, err
		}

		out[idx] = value
	}

	return out, nil
}

// replaceKey substitutes placeholders in a mapping key.
// The resolved key must be a string, integer, float, or
// boolean; it is stringified before being used as the
// output key.
func (en *Engine) replaceKey(
	key string,
	replacements map[string]interface{},
	path string,
) (string, error) {
	resolved, err := en.replaceString(
		key, replacements, path,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidValueType) {
			return "", fmt.Errorf(
				"key %q at %s: %w",
				key, path, ErrInvalidKeyType,
			)
		}

		return "", err
	}

	newKey, ok := literalText(resolved)
	if !ok {
		return "", fmt.Errorf(
			"key %q at %s resolved to %T: %w",
			key, path, resolved, ErrInvalidKeyType,
		)
	}

	return newKey, nil
}

// defaultEngine backs the package-level Replace.
var defaultEngine = New()

// Replace substitutes placeholders using a shared engine
// configured with DefaultPattern.
func Replace(
	template interface{},
	replacements map[string]interface{},
) (interface{}, error) {
	return defaultEngine.Replace(template, replacements)
}
