package vetting

import "safyscore/trust"

// Highlight is one bullet of the compact view.
type Highlight struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Explanation is the fixed passage shown for a grade in the detail view.
type Explanation struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

var highlights = map[trust.Grade][]Highlight{
	trust.GradeA: {
		{Icon: "✅", Text: "Trusted domain"},
		{Icon: "🔒", Text: "Strong protection"},
		{Icon: "🌟", Text: "Established reputation"},
	},
	trust.GradeB: {
		{Icon: "⚖️", Text: "Low risk"},
		{Icon: "🔍", Text: "Review recommended"},
		{Icon: "📅", Text: "Relatively recent site"},
	},
	trust.GradeC: {
		{Icon: "⚠️", Text: "Caution required"},
		{Icon: "🔓", Text: "Limited security"},
		{Icon: "🕵️", Text: "Anonymous owner"},
	},
	trust.GradeD: {
		{Icon: "🚫", Text: "Dangerous site"},
		{Icon: "⚠️", Text: "High risk"},
		{Icon: "❌", Text: "Avoid interacting"},
	},
}

var explanations = map[trust.Grade]Explanation{
	trust.GradeA: {
		Title: "Very Safe",
		Paragraphs: []string{
			"The site has a long history and a well-established reputation, which strengthens its " +
				"reliability. It is registered with a trusted registrar and its owner does not use an " +
				"anonymization service, which makes their identity easy to verify. This points to a low " +
				"risk of fraud or scams.",
			"The site also runs on secure infrastructure that better protects its users against " +
				"malicious attacks. Given its age and the transparency of its information, the site is " +
				"considered very safe.",
		},
	},
	trust.GradeB: {
		Title: "Moderately Safe",
		Paragraphs: []string{
			"The domain is relatively recent but registered with a trusted registrar. While the site " +
				"shows no major risk, its youth can sometimes be a concern. Stay alert, especially if it " +
				"shows suspicious traits or lacks transparency.",
			"The site owners are visible, which is a good sign. A moderately safe site can still be " +
				"exposed to some vulnerabilities, notably if its security information is not kept up to date.",
		},
	},
	trust.GradeC: {
		Title: "Less Safe",
		Paragraphs: []string{
			"The site is relatively new or uses an anonymization service to hide its owner's identity, " +
				"which makes its credibility harder to verify. This is not necessarily a sign of fraud, " +
				"but it indicates a higher level of risk.",
			"Sites using such services are often associated with suspicious activity such as online " +
				"scams or phishing attempts. Be careful when interacting with them.",
		},
	},
	trust.GradeD: {
		Title: "Very Risky",
		Paragraphs: []string{
			"This site shows several risk indicators and has been flagged by a threat-list service. " +
				"It has not had time to build a solid reputation, or has already lost it.",
			"Sites rated very risky are often created to carry out malicious attacks or to steal " +
				"personal information. Avoid interacting with this site.",
		},
	},
}

// HighlightsFor returns the compact-view bullets for g, or nil for an unknown grade.
func HighlightsFor(g trust.Grade) []Highlight {
	return highlights[g]
}

// ExplanationFor returns the detail-view passage for g. Unknown grades get a
// generic passage.
func ExplanationFor(g trust.Grade) Explanation {
	if e, ok := explanations[g]; ok {
		return e
	}
	return Explanation{
		Title:      "Unknown",
		Paragraphs: []string{"The safety of this site could not be determined."},
	}
}
