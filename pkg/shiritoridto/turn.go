package shiritoridto

// TurnReport is the outward-facing result of one validated turn.
type TurnReport struct {
	Outcome string
	Word    string
	BadChar string
	Unit    string
	Sibling string
	Reply   string
	Score   int
}

// CheckResult is the outward-facing result of a session-free word check.
type CheckResult struct {
	Passed  bool
	Reason  string
	Word    string
	BadChar string
	Unit    string
	Sibling string
}
