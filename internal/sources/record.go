package sources

// Record is the parsed, source-agnostic shape of one upstream character
// row. Fetchers normalize their wire formats into this before anything
// downstream sees the data, so reconciliation never handles raw JSON maps.
type Record struct {
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
	Romances []string
}
