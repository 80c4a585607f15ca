package characters

// Character is the canonical entity for one character after the two
// sources are reconciled. ID is assigned once, at reconciliation, in
// canonical order, and is never reassigned afterwards.
type Character struct {
	ID       string
	Name     string
	House    string
	Species  string
	Gender   string
	Ancestry string
	Wand     string
	Patronus string
	Student  bool
	Staff    bool
	Alive    bool
	Image    string

	// Romances holds the raw relationship mentions carried over from the
	// supplemental source, consumed later by romance inference.
	Romances []string
}
