package gocriteria

const (
	// NoLimit puts every item on a single page.
	NoLimit = -1

	MaxPerPage     = 100
	DefaultPerPage = 10
)

// IsNormalizedPerPageMax clamps a page size into [1, maxPerPage]. Non-positive
// sizes fall back to DefaultPerPage. The boolean is true if the size was
// already valid.
func IsNormalizedPerPageMax(perPage int, maxPerPage int) (int, bool) {
	if perPage <= 0 {
		return min(DefaultPerPage, maxPerPage), false
	} else if perPage > maxPerPage {
		return maxPerPage, false
	}

	return perPage, true
}

func NormalizePerPageMax(perPage int, maxPerPage int) int {
	ret, _ := IsNormalizedPerPageMax(perPage, maxPerPage)
	return ret
}

func NormalizePerPage(perPage int) int {
	return NormalizePerPageMax(perPage, MaxPerPage)
}

// pageCount returns the number of pages needed for total items. There is
// always at least one page, even for an empty dataset.
func pageCount(total int64, perPage int) int {
	if perPage == NoLimit || total <= 0 {
		return 1
	}

	return int((total + int64(perPage) - 1) / int64(perPage))
}

// pageOffset returns the offset of the first item of a 1-based page.
func pageOffset(page int, perPage int) int {
	if perPage == NoLimit || page <= 1 {
		return 0
	}

	return (page - 1) * perPage
}
