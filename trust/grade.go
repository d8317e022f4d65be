package trust

// Grade is a coarse trust level. A is the most trustworthy, D the least.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Grades lists every grade from safest to riskiest.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD}

// risk orders grades A < B < C < D. Unknown values rank as D.
func (g Grade) risk() int {
	switch g {
	case GradeA:
		return 0
	case GradeB:
		return 1
	case GradeC:
		return 2
	default:
		return 3
	}
}

// Valid reports whether g is one of A, B, C or D.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD:
		return true
	}
	return false
}

func (g Grade) String() string { return string(g) }

// Worse returns the higher-risk of two grades.
func Worse(a, b Grade) Grade {
	if b.risk() > a.risk() {
		return b
	}
	return a
}
