package domain

// Page size limits for list endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest selects one 1-indexed page of a list.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest builds a PageRequest from optional query values. Missing or
// non-positive values take the defaults; Limit is capped at MaxPageLimit.
func NewPageRequest(page, limit *int) PageRequest {
	p := PageRequest{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Bounds returns the half-open index range of this page within a list of
// total items. A page past the end yields an empty range. The offset is
// never computed by multiplication, so huge page numbers cannot overflow.
func (p PageRequest) Bounds(total int) (start, end int) {
	if p.Page < 1 || p.Limit < 1 || p.Page-1 > total/p.Limit {
		return total, total
	}
	start = min((p.Page-1)*p.Limit, total)
	end = min(start+p.Limit, total)
	return start, end
}
