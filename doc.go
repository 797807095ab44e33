// Package jsoninja generates JSON-shaped structures from templates
// written with Go data types. It walks an arbitrarily nested
// combination of mappings, sequences, and scalars, locates placeholder
// variables such as {{name}} inside string values and mapping keys,
// and builds a new structure with the replacements applied.
//
// Replacements are literals or zero-argument producers invoked at
// resolution time. A string that is exactly one placeholder keeps the
// replacement's native type; a placeholder embedded in longer text is
// spliced in as canonical text. The variable pattern is configurable
// per Engine instance via NewWithPattern or NewWithRegexp.
package jsoninja
