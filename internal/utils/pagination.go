// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Page returns the [start, end) window of a 1-based page over total items,
// along with the total number of pages. Out-of-range pages yield an empty
// window at the end. page and pageSize must be >= 1.
func Page(total, page, pageSize int) (start, end, pages int) {
	if total <= 0 {
		return 0, 0, 0
	}
	pages = (total + pageSize - 1) / pageSize
	// compare page counts first; (page-1)*pageSize overflows for huge pages
	if page > pages {
		return total, total, pages
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end, pages
}
