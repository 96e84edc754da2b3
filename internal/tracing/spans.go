package tracing

// Span attribute keys for registry tracing.
const (
	AttrBookName     = "book.name"
	AttrContactFirst = "contact.first_name"
	AttrContactLast  = "contact.last_name"
	AttrSearchField  = "search.field"
	AttrSearchValue  = "search.value"
	AttrSortField    = "sort.field"
	AttrResultCount  = "result.count"

	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefix for registry service operations.
const SpanPrefixRegistry = "registry."
