package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// PageQuery is the shared pagination envelope for list endpoints.
type PageQuery struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

func (p *PageQuery) Normalize(defaultPerPage, maxPerPage int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

func (p *PageQuery) Offset() int {
	return (p.Page - 1) * p.PerPage
}
