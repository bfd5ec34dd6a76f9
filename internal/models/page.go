package models

// PostPage is one page of a reverse-chronological post listing.
// Pages are 1-based and sized by the configured page length; totals are
// included so clients can build pager controls.
type PostPage struct {
	Items      []*Post `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}
