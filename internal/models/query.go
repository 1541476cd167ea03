package models

// FilterKind selects which subset of the collection a view starts from.
type FilterKind string

const (
	FilterAll             FilterKind = "all"
	FilterFavorites       FilterKind = "favorites"
	FilterCategory        FilterKind = "category"
	FilterRecent          FilterKind = "recent"
	FilterWithAttachments FilterKind = "attachments"
)

// SortKey selects the ordering of a resolved view.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortTitle      SortKey = "title"
	SortRating     SortKey = "rating"
	SortComplexity SortKey = "complexity"
)

// ViewQuery describes what a consumer wants to see. It is ephemeral and
// never persisted. CategoryPath is only consulted when Filter is
// FilterCategory; category filtering is exact-path, not subtree.
type ViewQuery struct {
	Filter       FilterKind
	CategoryPath string
	SortKey      SortKey
	SearchTerm   string
	Page         int // 1-based
	PageSize     int
}
