package mmodel

// Pagination wraps a list response with a generic Items slot plus the
// limit/page the caller asked for.
type Pagination struct {
	Items any `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SetItems assigns the page's items.
func (p *Pagination) SetItems(items any) {
	p.Items = items
}
