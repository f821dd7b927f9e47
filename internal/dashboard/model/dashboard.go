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

// Package model defines the data structures for the compliance dashboard.
package model

import "time"

// Work item kinds surfaced on the dashboard.
const (
	KindRequest   = "request"
	KindGrievance = "grievance"
)

// Totals summarizes the workload of an organization.
type Totals struct {
	TotalRequests     int64 `json:"totalRequests"`
	OpenRequests      int64 `json:"openRequests"`
	OverdueRequests   int64 `json:"overdueRequests"`
	TotalGrievances   int64 `json:"totalGrievances"`
	OpenGrievances    int64 `json:"openGrievances"`
	OverdueGrievances int64 `json:"overdueGrievances"`
}

// StatusCount is one slice of the status distribution across requests and
// grievances combined.
type StatusCount struct {
	StatusID   int64   `json:"statusId"`
	StatusName string  `json:"statusName"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WorkItem is a request or grievance surfaced on an attention list.
type WorkItem struct {
	ID               int64      `json:"id"`
	Kind             string     `json:"kind"`
	OrganizationID   int64      `json:"organizationId"`
	RequesterName    string     `json:"requesterName"`
	StatusID         int64      `json:"statusId"`
	AssignedToUserID *int64     `json:"assignedToUserId,omitempty"`
	CompletionDate   *time.Time `json:"completionDate,omitempty"`
	DaysRemaining    int        `json:"daysRemaining"`
}

// Dashboard is the aggregated view returned to the portal home page.
type Dashboard struct {
	Totals             Totals        `json:"totals"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
	Escalated          []WorkItem    `json:"escalated"`
	UpcomingDue        []WorkItem    `json:"upcomingDue"`
}
