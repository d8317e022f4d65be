package trust

import (
	"strings"
	"time"
)

// Registration holds the domain registration fields the scorer reads.
// A nil *Registration means the lookup failed or returned no usable record.
type Registration struct {
	CreatedAt time.Time `json:"created_at,omitempty"` // zero when missing or unparsable
	Privacy   bool      `json:"privacy"`
	Registrar string    `json:"registrar,omitempty"`
}

// ThreatMatch is a single threat-list hit for the URL.
type ThreatMatch struct {
	ThreatType   string `json:"threat_type"`
	PlatformType string `json:"platform_type,omitempty"`
	URL          string `json:"url,omitempty"`
}

// ThreatList is the outcome of a threat-list lookup.
// A nil *ThreatList means the lookup failed and carries no signal either way.
type ThreatList struct {
	HasMatches bool          `json:"has_matches"`
	Matches    []ThreatMatch `json:"matches,omitempty"`
}

// Assessment is the scorer's verdict.
type Assessment struct {
	Grade     Grade    `json:"grade"`
	Rationale string   `json:"rationale"`
	Reasons   []string `json:"reasons,omitempty"`
}

// Rationale fragments, in the order the rules can emit them.
const (
	ReasonTrustworthy    = "Appears trustworthy."
	ReasonThreatListed   = "Flagged as dangerous by the threat-list service."
	ReasonNoRegistration = "Registration data unavailable."
	ReasonVeryRecent     = "Very recently registered, caution advised."
	ReasonRecent         = "Relatively new domain."
	ReasonPrivacy        = "Registrant identity is shielded via a privacy service."
	ReasonUnanalyzable   = "Unable to analyze."
)

// Domain age thresholds in whole calendar years.
const (
	VeryRecentYears  = 1
	EstablishedYears = 5
)

// Score grades a site from its registration and threat-list lookups.
// Rules only ever move the grade towards D; a threat-list match pins it there.
func Score(reg *Registration, threats *ThreatList, now time.Time) Assessment {
	grade := GradeA
	var reasons []string

	downgrade := func(to Grade, reason string) {
		grade = Worse(grade, to)
		reasons = append(reasons, reason)
	}

	if threats != nil && threats.HasMatches {
		downgrade(GradeD, ReasonThreatListed)
	}

	if reg == nil {
		downgrade(GradeC, ReasonNoRegistration)
	} else {
		if !reg.CreatedAt.IsZero() {
			age := AgeYears(reg.CreatedAt, now)
			switch {
			case age < VeryRecentYears:
				downgrade(GradeC, ReasonVeryRecent)
			case age < EstablishedYears:
				downgrade(GradeB, ReasonRecent)
			}
		}
		if reg.Privacy {
			downgrade(GradeC, ReasonPrivacy)
		}
	}

	rationale := ReasonTrustworthy
	if len(reasons) > 0 {
		rationale = strings.Join(reasons, " ")
	}

	return Assessment{
		Grade:     grade,
		Rationale: rationale,
		Reasons:   reasons,
	}
}

// AgeYears is the calendar-year difference between created and now.
// 2019-12-31 and 2020-01-01 are one year apart.
func AgeYears(created, now time.Time) int {
	return now.Year() - created.Year()
}

// Unanalyzable is the conservative verdict used when evaluation itself fails.
func Unanalyzable() Assessment {
	return Assessment{
		Grade:     GradeC,
		Rationale: ReasonUnanalyzable,
		Reasons:   []string{ReasonUnanalyzable},
	}
}
