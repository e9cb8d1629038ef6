package domain

import (
	"regexp"
	"strings"
)

// Role represents the content-importance tier of an article
type Role int

const (
	RoleUnknown Role = iota
	RolePillar       // Long-form cornerstone page of a cluster
	RoleHub          // Navigation page linking spokes
	RoleSpoke        // Narrow supporting article
)

func (r Role) String() string {
	switch r {
	case RolePillar:
		return "pillar"
	case RoleHub:
		return "hub"
	case RoleSpoke:
		return "spoke"
	default:
		return "unknown"
	}
}

// ParseRole converts a front-matter role value, ignoring case and surrounding space
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pillar":
		return RolePillar
	case "hub":
		return RoleHub
	case "spoke":
		return RoleSpoke
	default:
		return RoleUnknown
	}
}

// Priority represents the editorial priority tier of an article
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityP1
	PriorityP2
	PriorityP3
)

// String returns "P1".."P3", or "--" for an unset priority
func (p Priority) String() string {
	switch p {
	case PriorityP1:
		return "P1"
	case PriorityP2:
		return "P2"
	case PriorityP3:
		return "P3"
	default:
		return "--"
	}
}

// Rank returns the sort rank of the priority. Unknown ranks after P3.
func (p Priority) Rank() int {
	if p == PriorityUnknown {
		return 4
	}
	return int(p)
}

// ParsePriority converts a front-matter priority value ("P1", "p2", ...)
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P1":
		return PriorityP1
	case "P2":
		return PriorityP2
	case "P3":
		return PriorityP3
	default:
		return PriorityUnknown
	}
}

var (
	slugRegex       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsValidSlug reports whether s is lowercase words joined by single dashes
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// Slugify turns free text such as a cluster name into a URL-safe slug
// (e.g., "Heat Pumps & Furnaces" -> "heat-pumps-furnaces")
func Slugify(s string) string {
	s = nonSlugRunRegex.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
