package services

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a normalised page request. Use NewPage to build one.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps raw query values: numbers below 1 become 1, sizes below 1
// become DefaultPageSize and sizes above MaxPageSize become MaxPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageMeta is the "meta" block of list responses.
type PageMeta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Meta describes p within a result set of total items.
func (p Page) Meta(total int64) PageMeta {
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return PageMeta{
		CurrentPage:     p.Number,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    p.Size,
		HasNextPage:     p.Number < totalPages,
		HasPreviousPage: p.Number > 1,
	}
}
