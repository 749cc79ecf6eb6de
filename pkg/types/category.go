package types

// CategoryKind distinguishes full-game categories from per-level ones.
type CategoryKind string

const (
	KindPerGame  CategoryKind = "per-game"
	KindPerLevel CategoryKind = "per-level"
)

// Category is a named ruleset grouping runs. Variables holds the variable
// definitions applicable to this category, in the category's display order;
// that order fixes the generated column order.
type Category struct {
	ID        string
	Name      string
	Kind      CategoryKind
	Players   int
	GameID    string
	Variables []Variable
}

// Variable is a category axis (for example "Difficulty") whose Values maps
// the value ID of each option to its display label. Two variables of one
// category may share a display name; column labels disambiguate by ID.
type Variable struct {
	ID     string
	Name   string
	Values map[string]string
}
