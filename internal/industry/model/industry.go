// Package model defines the data structures for industry classification.
package model

// Industry classifies an organization for reporting purposes.
type Industry struct {
	IndustryID   int64  `json:"industryId"`
	IndustryName string `json:"industryName"`
}

// ListResponse wraps the industry catalog.
type ListResponse struct {
	Industries []Industry `json:"industries"`
	Total      int        `json:"total"`
}
