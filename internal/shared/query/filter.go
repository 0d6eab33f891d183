// Package query holds the paging and sorting parameters shared by every list operation.
package query

import "github.com/orris-inc/helpdesk/internal/shared/constants"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return constants.DefaultPageSize
	}
	if f.PageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return f.SortOrder == "desc" || f.SortOrder == "DESC"
}

// OrderClause renders "column DIR" when SortBy maps onto an allowed column,
// falling back to def otherwise. allowed maps API field names to column names.
func (f SortFilter) OrderClause(allowed map[string]string, def string) string {
	column, ok := allowed[f.SortBy]
	if !ok {
		return def
	}
	order := "ASC"
	if f.IsDescending() {
		order = "DESC"
	}
	return column + " " + order
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

type FilterOption func(*BaseFilter)

func WithPage(page, pageSize int) FilterOption {
	return func(f *BaseFilter) {
		f.Page = page
		f.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(f *BaseFilter) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	}
}

func NewBaseFilter(opts ...FilterOption) BaseFilter {
	f := BaseFilter{
		PageFilter: PageFilter{
			Page:     constants.DefaultPage,
			PageSize: constants.DefaultPageSize,
		},
		SortFilter: SortFilter{
			SortOrder: "DESC",
		},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
