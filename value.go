package jsoninja

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Producer supplies a replacement value at resolution
// time. It is invoked once per placeholder occurrence, in
// traversal order; results are never cached across
// occurrences. Replacement tables may also hold plain
// func() interface{} and func() (interface{}, error)
// values.
type Producer func() (interface{}, error)

// errSpliceFallback aborts the fasttemplate fast path when
// a scanned tag is not a plain variable name; the regex
// path then decides what the text means.
var errSpliceFallback = errors.New("splice fallback")

// replaceString substitutes every placeholder occurrence
// in s. A string that is exactly one placeholder keeps the
// replacement's native type; any other text coerces
// replacements to their canonical text form.
func (en *Engine) replaceString(
	s string,
	replacements map[string]interface{},
	path string,
) (interface{}, error) {
	match := en.regex.FindStringSubmatchIndex(s)
	if match == nil {
		return s, nil
	}

	if match[2] >= 0 &&
		match[0] == 0 && match[1] == len(s) {
		value, found, err := en.resolve(
			s[match[2]:match[3]], replacements, path,
		)
		if err != nil {
			return nil, err
		}

		if !found {
			return s, nil
		}

		return value, nil
	}

	if en.fastTags {
		out, err := en.spliceFast(s, replacements, path)
		if err == nil {
			return out, nil
		}

		if !errors.Is(err, errSpliceFallback) {
			return nil, err
		}
	}

	return en.splice(s, replacements, path)
}

// spliceFast substitutes {{name}} tags using
// fasttemplate. It is only used by engines configured
// with DefaultPattern.
func (en *Engine) spliceFast(
	s string,
	replacements map[string]interface{},
	path string,
) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(
		s, "{{", "}}",
		func(w io.Writer, tag string) (int, error) {
			name, ok := tagName(tag)
			if !ok {
				return 0, errSpliceFallback
			}

			value, found, err := en.resolve(
				name, replacements, path,
			)
			if err != nil {
				return 0, err
			}

			if !found {
				return io.WriteString(
					w, "{{"+tag+"}}",
				)
			}

			text, ok := literalText(value)
			if !ok {
				return 0, fmt.Errorf(
					"variable %q at %s resolved to %T: %w",
					name, path, value, ErrInvalidValueType,
				)
			}

			return io.WriteString(w, text)
		},
	)
}

// tagName validates a fasttemplate tag against the default
// pattern's shape: an optional single space on each side
// of [a-zA-Z0-9_]+.
func tagName(tag string) (string, bool) {
	name := strings.TrimPrefix(tag, " ")
	name = strings.TrimSuffix(name, " ")

	if name == "" {
		return "", false
	}

	for i := 0; i < len(name); i++ {
		ch := name[i]

		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '_':
		default:
			return "", false
		}
	}

	return name, true
}

// splice substitutes every pattern match in s, coercing
// resolved values to text.
func (en *Engine) splice(
	s string,
	replacements map[string]interface{},
	path string,
) (string, error) {
	var sb strings.Builder

	last := 0

	for _, match := range en.regex.FindAllStringSubmatchIndex(s, -1) {
		sb.WriteString(s[last:match[0]])

		// A capture group that did not participate in the
		// match has no variable name; keep the text.
		if match[2] < 0 {
			sb.WriteString(s[match[0]:match[1]])
			last = match[1]

			continue
		}

		name := s[match[2]:match[3]]

		value, found, err := en.resolve(
			name, replacements, path,
		)
		if err != nil {
			return "", err
		}

		if !found {
			sb.WriteString(s[match[0]:match[1]])
			last = match[1]

			continue
		}

		text, ok := literalText(value)
		if !ok {
			return "", fmt.Errorf(
				"variable %q at %s resolved to %T: %w",
				name, path, value, ErrInvalidValueType,
			)
		}

		sb.WriteString(text)
		last = match[1]
	}

	sb.WriteString(s[last:])

	return sb.String(), nil
}

// resolve looks a variable up in the replacement table and
// invokes producers. found is false only when the variable
// is missing and the engine keeps missing placeholders.
func (en *Engine) resolve(
	name string,
	replacements map[string]interface{},
	path string,
) (interface{}, bool, error) {
	replacement, ok := replacements[name]
	if !ok {
		if en.KeepMissing {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf(
			"%w %q at %s",
			ErrUnknownVariable, name, path,
		)
	}

	switch producer := replacement.(type) {
	case Producer:
		return en.produce(producer, name, path)
	case func() (interface{}, error):
		return en.produce(producer, name, path)
	case func() interface{}:
		return producer(), true, nil
	default:
		return replacement, true, nil
	}
}

// produce runs a producer callback, wrapping any failure.
func (en *Engine) produce(
	producer func() (interface{}, error),
	name string,
	path string,
) (interface{}, bool, error) {
	value, err := producer()
	if err != nil {
		return nil, false, fmt.Errorf(
			"producer for %q at %s: %w: %w",
			name, path, ErrProducerFailed, err,
		)
	}

	return value, true, nil
}

// literalText renders a literal replacement in its
// canonical text form. The second return is false for
// values outside the literal whitelist.
func literalText(value interface{}) (string, bool) {
	switch val := value.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(
			float64(val), 'g', -1, 32,
		), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	default:
		return "", false
	}
}
