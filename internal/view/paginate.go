package view

import "github.com/vishwajitvm/tracenest/internal/model"

// Page is one window into a filtered record sequence.
type Page struct {
	Records    []model.LogRecord
	Number     int
	TotalPages int
	TotalCount int
}

// Paginate slices the records for the given 1-based page number.
// TotalPages is max(1, ceil(len/pageSize)), so an empty sequence still has
// one (empty) page. Page numbers are not clamped: requesting a page outside
// [1, TotalPages] yields an empty slice, and keeping the number in range is
// the caller's job.
func Paginate(records []model.LogRecord, page, pageSize int) Page {
	total := len(records)

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}

	return Page{
		Records:    records[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalCount: total,
	}
}
