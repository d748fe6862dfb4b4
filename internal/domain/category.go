package domain

const (
	// DefaultCategoryColor is used for categories missing from the list
	DefaultCategoryColor = "#6B7280"
	// DefaultCategoryIcon is used for categories missing from the list
	DefaultCategoryIcon = "circle"
)

// Category is display metadata for a transaction category.
// Transactions are never validated against this list.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Categories is the fixed list offered to the presentation layer
var Categories = []Category{
	{Name: "Salário", Color: "#10B981", Icon: "briefcase"},
	{Name: "Freelance", Color: "#3B82F6", Icon: "laptop"},
	{Name: "Investimentos", Color: "#8B5CF6", Icon: "trending-up"},
	{Name: "Moradia", Color: "#EF4444", Icon: "home"},
	{Name: "Alimentação", Color: "#F59E0B", Icon: "utensils"},
	{Name: "Transporte", Color: "#F97316", Icon: "car"},
	{Name: "Saúde", Color: "#EC4899", Icon: "heart"},
	{Name: "Educação", Color: "#06B6D4", Icon: "book"},
	{Name: "Lazer", Color: "#84CC16", Icon: "smile"},
	{Name: "Outros", Color: DefaultCategoryColor, Icon: DefaultCategoryIcon},
}

// LookupCategory returns the list entry named name, or a fallback entry
// with the default color and icon
func LookupCategory(name string) Category {
	for _, c := range Categories {
		if c.Name == name {
			return c
		}
	}
	return Category{Name: name, Color: DefaultCategoryColor, Icon: DefaultCategoryIcon}
}
