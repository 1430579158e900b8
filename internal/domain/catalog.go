package domain

// CatalogEntry binds a task/work label to a display color. Names are unique.
type CatalogEntry struct {
	Name  string
	Color Color
}
