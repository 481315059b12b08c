package domain

// PageInfo describes the position of a page in a cursor chain.
// EndCursor is only meaningful for the Filters that produced it.
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// Page is one page of listed products.
type Page struct {
	Products []Product
	PageInfo PageInfo
}
