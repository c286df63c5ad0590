package models

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page is the listing envelope returned by every list endpoint.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// BulkError reports one failed item of a bulk operation.
type BulkError struct {
	Index int    `json:"index"`
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// BulkResult collects the outcome of a bulk operation. Items are processed
// independently, so both slices may be non-empty.
type BulkResult[T any] struct {
	Succeeded []T         `json:"items"`
	Errors    []BulkError `json:"errors"`
}

// BulkResponse is the JSON body of a bulk approve or reject. The success
// count is also sent under the verb of the operation.
type BulkResponse[T any] struct {
	Message   string      `json:"message"`
	Succeeded int         `json:"succeeded"`
	Approved  *int        `json:"approved,omitempty"`
	Rejected  *int        `json:"rejected,omitempty"`
	Items     []T         `json:"items"`
	Errors    []BulkError `json:"errors"`
}

// UnreadCountResponse is returned by the unread notifications counter.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
