package models

// RGB is a display color for a category.
type RGB struct {
	R, G, B uint8
}

// CategoryFamily selects which data-source family a category belongs to.
type CategoryFamily int

const (
	// FamilyDensity groups incidents into time windows and renders
	// per-cell incident counts.
	FamilyDensity CategoryFamily = iota
	// FamilyDiversity groups cells by search radius and renders a
	// temporal-diversity score.
	FamilyDiversity
)

// String returns the family name used in logs.
func (f CategoryFamily) String() string {
	if f == FamilyDiversity {
		return "diversity"
	}
	return "density"
}

// Category is one selectable data grouping: a time window in the density
// family, or a radius group in the diversity family. OrderIndex is a
// contiguous 0-based rank used for age/severity scaling; consumers must
// not assume the catalog is sorted by ID.
type Category struct {
	ID         int
	Name       string
	Color      RGB
	OrderIndex int
}

// The two catalogs are fixed at process start. Slices returned by the
// accessors are fresh copies so callers cannot mutate the catalog.
var timeWindows = []Category{
	{ID: 0, Name: "Last 24 hours", Color: RGB{R: 230, G: 57, B: 70}, OrderIndex: 0},
	{ID: 1, Name: "Last 7 days", Color: RGB{R: 244, G: 162, B: 97}, OrderIndex: 1},
	{ID: 2, Name: "Last 30 days", Color: RGB{R: 233, G: 196, B: 106}, OrderIndex: 2},
	{ID: 3, Name: "Older", Color: RGB{R: 96, G: 108, B: 56}, OrderIndex: 3},
}

var radiusGroups = []Category{
	{ID: 0, Name: "250 m radius", Color: RGB{R: 69, G: 123, B: 157}, OrderIndex: 0},
	{ID: 1, Name: "500 m radius", Color: RGB{R: 42, G: 157, B: 143}, OrderIndex: 1},
	{ID: 2, Name: "1 km radius", Color: RGB{R: 38, G: 70, B: 83}, OrderIndex: 2},
	{ID: 3, Name: "2 km radius", Color: RGB{R: 29, G: 53, B: 87}, OrderIndex: 3},
}

// TimeWindows returns the density-family catalog.
func TimeWindows() []Category {
	out := make([]Category, len(timeWindows))
	copy(out, timeWindows)
	return out
}

// RadiusGroups returns the diversity-family catalog.
func RadiusGroups() []Category {
	out := make([]Category, len(radiusGroups))
	copy(out, radiusGroups)
	return out
}

// Catalog returns the catalog for the given family.
func Catalog(f CategoryFamily) []Category {
	if f == FamilyDiversity {
		return RadiusGroups()
	}
	return TimeWindows()
}

// RadiusMeters maps a radius group ID to its search radius. Unknown IDs
// fall back to the smallest radius.
func RadiusMeters(groupID int) float64 {
	switch groupID {
	case 1:
		return 500
	case 2:
		return 1000
	case 3:
		return 2000
	default:
		return 250
	}
}
