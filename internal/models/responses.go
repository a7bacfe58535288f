package models

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToolSummary describes one registered tool on the HTTP listing endpoint.
type ToolSummary struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Path         string `json:"path"`
	RequiredTier string `json:"required_tier"`
}

// ToolList is the body of GET /tools.
type ToolList struct {
	Tier  string        `json:"tier"`
	Count int           `json:"count"`
	Tools []ToolSummary `json:"tools"`
}

// UsageReport is the body of GET /usage.
type UsageReport struct {
	Date  string           `json:"date"`
	Total int64            `json:"total"`
	Tools map[string]int64 `json:"tools"`
}
