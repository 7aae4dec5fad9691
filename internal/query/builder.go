package query

import (
	"fmt"
	"strings"
)

// Condition is one named filter. The field name's suffix selects the
// comparison operator: "_contains" does a case-insensitive substring match,
// "_from"/"_to" are inclusive bounds on a date-typed field, and a bare field
// name is exact equality.
type Condition struct {
	Field string
	Value any
}

// Conditions is an ordered set of filter conditions. Order is preserved so
// repeated calls with the same input produce identical plans, which keeps
// generated queries reproducible in tests and logs.
type Conditions []Condition

// Add appends a condition. Nil and empty-string values are kept here and
// dropped later by BuildPredicate; callers can append unconditionally.
func (c Conditions) Add(field string, value any) Conditions {
	return append(c, Condition{Field: field, Value: value})
}

// BuildPredicate turns the conditions into a WHERE fragment and its parameter
// map. Conditions with nil or empty-string values are silently skipped; that
// is intentional filtering, not an error. Each surviving condition binds a
// freshly allocated parameter slot (param_0, param_1, ...). An empty result
// set of conditions yields an empty fragment with no WHERE keyword.
func BuildPredicate(nodeVar string, conditions Conditions) (string, map[string]any) {
	var parts []string
	params := make(map[string]any)
	counter := 0

	for _, cond := range conditions {
		if cond.Value == nil || cond.Value == "" {
			continue
		}

		paramName := fmt.Sprintf("param_%d", counter)

		switch {
		case strings.HasSuffix(cond.Field, "_contains"):
			field := strings.TrimSuffix(cond.Field, "_contains")
			parts = append(parts, fmt.Sprintf(
				"toLower(%s.%s) CONTAINS toLower($%s)", nodeVar, field, paramName))
			params[paramName] = fmt.Sprintf("%v", cond.Value)
		case strings.HasSuffix(cond.Field, "_from"):
			field := strings.TrimSuffix(cond.Field, "_from")
			parts = append(parts, fmt.Sprintf(
				"%s.%s >= date($%s)", nodeVar, field, paramName))
			params[paramName] = fmt.Sprintf("%v", cond.Value)
		case strings.HasSuffix(cond.Field, "_to"):
			field := strings.TrimSuffix(cond.Field, "_to")
			parts = append(parts, fmt.Sprintf(
				"%s.%s <= date($%s)", nodeVar, field, paramName))
			params[paramName] = fmt.Sprintf("%v", cond.Value)
		default:
			parts = append(parts, fmt.Sprintf(
				"%s.%s = $%s", nodeVar, cond.Field, paramName))
			params[paramName] = cond.Value
		}

		counter++
	}

	if len(parts) == 0 {
		return "", params
	}
	return "WHERE " + strings.Join(parts, " AND "), params
}

// sanitizeLabel ensures node labels are safe to splice into Cypher text.
// Anything outside [A-Za-z0-9_] becomes an underscore.
func sanitizeLabel(label string) string {
	var result strings.Builder
	for _, r := range label {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// sanitizeRelType ensures relationship types are safe to splice into Cypher
// text. Converts to uppercase, anything outside [A-Z0-9_] becomes underscore.
func sanitizeRelType(relType string) string {
	relType = strings.ToUpper(relType)
	var result strings.Builder
	for _, r := range relType {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// sanitizeProperty ensures property names are safe to splice into Cypher text.
// Converts to lowercase, anything outside [a-z0-9_] becomes underscore.
func sanitizeProperty(prop string) string {
	prop = strings.ToLower(prop)
	var result strings.Builder
	for _, r := range prop {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// relTypePattern renders an optional relationship-type allowlist as a Cypher
// pattern fragment like ":OFFICER_OF|INTERMEDIARY_OF", or "" for all types.
func relTypePattern(relTypes []string) string {
	if len(relTypes) == 0 {
		return ""
	}
	sanitized := make([]string, 0, len(relTypes))
	for _, rt := range relTypes {
		sanitized = append(sanitized, sanitizeRelType(rt))
	}
	return ":" + strings.Join(sanitized, "|")
}
