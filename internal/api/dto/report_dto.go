package dto

import "time"

// UpdateStatusRequest is the PUT /api/reports/:id body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReporterInfo is the nested user block on report listings.
type ReporterInfo struct {
	FacebookID string  `json:"fb_id"`
	Name       *string `json:"name"`
}

// ReportResponse is one report record as served by the admin API.
type ReportResponse struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Reporter    *ReporterInfo `json:"users"`
}

// UpdateReportResponse wraps a successful status update.
type UpdateReportResponse struct {
	Message string         `json:"message"`
	Report  ReportResponse `json:"report"`
}

// CategoryStats breaks report counts down by category.
type CategoryStats struct {
	Flood    int `json:"flood"`
	Fire     int `json:"fire"`
	Accident int `json:"accident"`
	Other    int `json:"other"`
}

// StatsResponse is the GET /api/stats payload.
type StatsResponse struct {
	Total       int           `json:"total"`
	Pending     int           `json:"pending"`
	InProgress  int           `json:"inProgress"`
	Resolved    int           `json:"resolved"`
	Dismissed   int           `json:"dismissed"`
	ByCategory  CategoryStats `json:"byCategory"`
	RecentCount int           `json:"recentCount"`
}

// MessageResponse is a bare confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
