package models

import (
	"fmt"
	"strings"
)

// LawFilter restricts which law_type tags may be retrieved for a question.
type LawFilter string

const (
	FilterSharia     LawFilter = "sharia"
	FilterLabour     LawFilter = "labour"
	FilterRegulatory LawFilter = "regulatory"
	FilterHybrid     LawFilter = "hybrid" // no restriction
)

// lawTypeMapping maps each filter to its allowed law_type tags. Built once
// at process start and never mutated. Hybrid has no entry: it admits
// everything.
var lawTypeMapping = map[LawFilter][]string{
	FilterSharia:     {"sharia_law", "islamic_law"},
	FilterLabour:     {"labor_law", "employment_law"},
	FilterRegulatory: {"administrative_law", "regulatory_law", "compliance"},
}

var filterDescriptions = map[LawFilter]string{
	FilterSharia:     "Islamic law and Sharia-based legal principles",
	FilterLabour:     "Employment law, labor rights, and workplace regulations",
	FilterRegulatory: "Administrative law and regulatory compliance",
	FilterHybrid:     "All legal areas (no filter applied)",
}

// ParseLawFilter parses a user-supplied filter name. An empty string
// defaults to hybrid.
func ParseLawFilter(s string) (LawFilter, error) {
	if s == "" {
		return FilterHybrid, nil
	}
	f := LawFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterSharia, FilterLabour, FilterRegulatory, FilterHybrid:
		return f, nil
	}
	return "", fmt.Errorf("unknown law filter: %q", s)
}

// AvailableFilters returns the filters a user may select, in display order.
func AvailableFilters() []LawFilter {
	return []LawFilter{FilterSharia, FilterLabour, FilterRegulatory, FilterHybrid}
}

// AllowedTags returns the law_type tags this filter admits, or nil for
// hybrid (unrestricted).
func (f LawFilter) AllowedTags() []string {
	return lawTypeMapping[f]
}

// Allows reports whether a document with the given law_type tag passes this
// filter. Matching is by substring against the stored tag, so e.g. a tag of
// "saudi_labor_law" still passes the labour filter.
func (f LawFilter) Allows(lawType string) bool {
	if f == FilterHybrid {
		return true
	}
	tag := strings.ToLower(lawType)
	for _, allowed := range lawTypeMapping[f] {
		if strings.Contains(tag, allowed) {
			return true
		}
	}
	return false
}

// Description returns a human-readable description of the filter.
func (f LawFilter) Description() string {
	if d, ok := filterDescriptions[f]; ok {
		return d
	}
	return "Unknown filter"
}

func (f LawFilter) String() string {
	return string(f)
}
