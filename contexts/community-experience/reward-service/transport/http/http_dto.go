package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UserPointsResponse struct {
	UserID      string    `json:"user_id"`
	TotalPoints int       `json:"total_points"`
	Grants      int       `json:"grants"`
	UpdatedAt   time.Time `json:"updated_at"`
}
