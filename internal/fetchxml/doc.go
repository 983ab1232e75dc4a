// Package fetchxml translates the XML query grammar into the structured
// query tree the engine evaluates, and serializes trees back to markup.
//
// The grammar's element vocabulary (fetch, entity, attribute,
// all-attributes, order, filter, condition, value, link-entity) and the
// operator-name vocabulary are a compatibility contract with the real
// platform, including attribute casing. Nothing here is configurable.
//
// Failure modes are deliberately split:
//   - ParseError: the markup is malformed (bad XML, missing required
//     attributes, contradictory elements).
//   - UnsupportedOperatorError: the markup is well-formed but names an
//     operator outside the implemented vocabulary. Kept distinct so a
//     coverage gap fails loudly instead of silently matching zero rows.
//
// Translate never returns a partial tree: any failure yields a nil query.
package fetchxml
