// Package render applies jsoninja substitution to serialized JSON and
// YAML documents: it decodes the document, replaces placeholders, and
// re-encodes the result. The engine itself never touches serialized
// text; this package is the codec glue around it.
package render
