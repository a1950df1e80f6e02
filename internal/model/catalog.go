package model

// ComparisonItem is one priced reference good from the comparison catalog.
// Items are addressed by their position in the catalog, never copied into
// the cart.
type ComparisonItem struct {
	Name     string  `yaml:"name" json:"name"`
	Price    float64 `yaml:"price" json:"price"`
	Unit     string  `yaml:"unit" json:"unit"`
	Dynasty  string  `yaml:"dynasty,omitempty" json:"dynasty,omitempty"`
	YearsAgo int     `yaml:"years_ago,omitempty" json:"years_ago,omitempty"`
}
