package models

import "encoding/json"

// Request types

// SubmitRequest is the body the quiz posts when a user finishes.
// UserData must be a JSON object.
type SubmitRequest struct {
	UserData json.RawMessage `json:"userData"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ListResponse struct {
	Records []json.RawMessage `json:"records"`
}

// Domain types

// Submission is the shape the quiz front end currently sends. The store
// treats records as opaque; this type exists for clients and tests.
type Submission struct {
	Contact       string `json:"contact"`
	Compatibility int    `json:"compatibility"`
	Answers       []int  `json:"answers,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Stats types

// CompatibilityBand counts submissions at or above Min and below the next band.
type CompatibilityBand struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

type StatsResponse struct {
	Records int                 `json:"records"`
	Scored  int                 `json:"scored"`
	Mean    float64             `json:"mean"`
	Median  float64             `json:"median"`
	P10     float64             `json:"p10"`
	P90     float64             `json:"p90"`
	Bands   []CompatibilityBand `json:"bands"`
}
