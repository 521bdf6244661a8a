package pagination

import "strconv"

// PostsPerPage is the fixed page size for every post listing.
const PostsPerPage = 10

// Page describes one bounded slice of an ordered collection.
type Page struct {
	Number     int
	Size       int
	Offset     int
	TotalPages int
	TotalItems int64
	HasNext    bool
	HasPrev    bool
}

// ParsePage turns the untrusted ?page= query value into a page number.
// Non-numeric input and numbers below 1 fall back to the first page;
// clamping against the upper bound happens in Paginate once the total
// count is known.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate clamps the requested page against the collection size and
// returns the resulting page metadata. Out-of-range pages never error:
// requesting a page past the end yields the last valid page, so the
// caller always gets min(PostsPerPage, remaining) items. An empty
// collection yields a single empty page.
func Paginate(total int64, requested int) Page {
	totalPages := int((total + PostsPerPage - 1) / PostsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       PostsPerPage,
		Offset:     (number - 1) * PostsPerPage,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// NextPage returns the following page number, or the current one on the last page.
func (p Page) NextPage() int {
	if p.HasNext {
		return p.Number + 1
	}
	return p.Number
}

// PrevPage returns the preceding page number, or the current one on the first page.
func (p Page) PrevPage() int {
	if p.HasPrev {
		return p.Number - 1
	}
	return p.Number
}
