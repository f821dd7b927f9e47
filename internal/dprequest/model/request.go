/*
 * Copyright (c) 2025, ComplyArk. (https://www.complyark.com).
 *
 * ComplyArk licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package model defines the data structures for data principal requests.
package model

import "time"

// Request types recognized under the DPDPA.
const (
	TypeAccess     = "Access"
	TypeCorrection = "Correction"
	TypeErasure    = "Erasure"
	TypeNomination = "Nomination"
)

// DPRequest is a data principal request tracked through its lifecycle.
type DPRequest struct {
	RequestID        int64      `json:"requestId"`
	OrganizationID   int64      `json:"organizationId"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	RequestType      string     `json:"requestType"`
	RequestComments  string     `json:"requestComments,omitempty"`
	StatusID         int64      `json:"statusId"`
	AssignedToUserID *int64     `json:"assignedToUserId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
	CompletionDate   *time.Time `json:"completionDate,omitempty"`
	CompletedOnTime  *bool      `json:"completedOnTime,omitempty"`
	ClosedDateTime   *time.Time `json:"closedDateTime,omitempty"`
	ClosureComments  *string    `json:"closureComments,omitempty"`
}

// RequesterName returns the data principal's display name.
func (r *DPRequest) RequesterName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// SubmitRequest is the payload of the public submission endpoint.
type SubmitRequest struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"max=20"`
	RequestType     string `json:"requestType" binding:"required,oneof=Access Correction Erasure Nomination"`
	RequestComments string `json:"requestComments" binding:"max=2000"`
}

// UpdateRequest is the staff-side lifecycle update payload. Any of the
// three parts may be supplied: a status move, an assignment change, or a
// comment. Unassign clears the assignment explicitly since a missing
// assignedToUserId means "no assignment change".
type UpdateRequest struct {
	StatusID         *int64 `json:"statusId"`
	ClosureComments  string `json:"closureComments"`
	AssignedToUserID *int64 `json:"assignedToUserId"`
	Unassign         bool   `json:"unassign"`
	Comments         string `json:"comments"`
}

// HasAssignmentChange reports whether the payload carries an assignment part.
func (u *UpdateRequest) HasAssignmentChange() bool {
	return u.AssignedToUserID != nil || u.Unassign
}

// HistoryEntry is one enriched row of a request's audit trail.
type HistoryEntry struct {
	HistoryID           int64     `json:"historyId"`
	RequestID           int64     `json:"requestId"`
	ChangeDate          time.Time `json:"changeDate"`
	ChangedByUserID     int64     `json:"changedByUserId"`
	ChangedByName       string    `json:"changedByName,omitempty"`
	OldStatusID         *int64    `json:"oldStatusId,omitempty"`
	OldStatusName       *string   `json:"oldStatusName,omitempty"`
	NewStatusID         *int64    `json:"newStatusId,omitempty"`
	NewStatusName       *string   `json:"newStatusName,omitempty"`
	OldAssignedToUserID *int64    `json:"oldAssignedToUserId,omitempty"`
	OldAssigneeName     *string   `json:"oldAssigneeName,omitempty"`
	NewAssignedToUserID *int64    `json:"newAssignedToUserId,omitempty"`
	NewAssigneeName     *string   `json:"newAssigneeName,omitempty"`
	Comments            string    `json:"comments,omitempty"`
}

// SearchFilters narrows a request listing.
type SearchFilters struct {
	StatusID         *int64
	AssignedToUserID *int64
	RequestType      string
	Limit            int
	Offset           int
}

// ListResponse wraps a page of requests.
type ListResponse struct {
	Requests []DPRequest `json:"requests"`
	Total    int         `json:"total"`
	Limit    int         `json:"limit"`
	Offset   int         `json:"offset"`
}

// HistoryResponse wraps a request's audit trail, newest first.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Total   int            `json:"total"`
}
