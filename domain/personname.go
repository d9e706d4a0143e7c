package domain

import "strings"

// PersonName is a parsed DICOM PN value. The five components are
// Family^Given^Middle^Prefix^Suffix; components the source string does not
// carry are reported as absent, not as empty strings.
type PersonName struct {
	components []string
}

// ParsePersonName splits a PN-encoded string on the "^" component delimiter.
// Trailing padding is removed per component.
func ParsePersonName(s string) PersonName {
	s = strings.TrimRight(s, "\x00 ")
	if s == "" {
		return PersonName{}
	}
	parts := strings.Split(s, "^")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return PersonName{components: parts}
}

func (n PersonName) component(i int) (string, bool) {
	if i >= len(n.components) || n.components[i] == "" {
		return "", false
	}
	return n.components[i], true
}

// Family returns the family name component.
func (n PersonName) Family() (string, bool) { return n.component(0) }

// Given returns the given name component.
func (n PersonName) Given() (string, bool) { return n.component(1) }

// Middle returns the middle name component.
func (n PersonName) Middle() (string, bool) { return n.component(2) }

// Prefix returns the name prefix component.
func (n PersonName) Prefix() (string, bool) { return n.component(3) }

// Suffix returns the name suffix component.
func (n PersonName) Suffix() (string, bool) { return n.component(4) }

// Formatted returns a display name in "Given Family" order, falling back to
// whichever components are present.
func (n PersonName) Formatted() string {
	var parts []string
	if prefix, ok := n.Prefix(); ok {
		parts = append(parts, prefix)
	}
	if given, ok := n.Given(); ok {
		parts = append(parts, given)
	}
	if middle, ok := n.Middle(); ok {
		parts = append(parts, middle)
	}
	if family, ok := n.Family(); ok {
		parts = append(parts, family)
	}
	if suffix, ok := n.Suffix(); ok {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, " ")
}
