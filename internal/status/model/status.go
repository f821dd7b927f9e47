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

// Package model defines the data structures for the request status catalog.
package model

// Status is a lifecycle state in the shared request/grievance status catalog.
// SLADays drives due-date computation for entities entering this state.
type Status struct {
	StatusID   int64  `json:"statusId"`
	StatusName string `json:"statusName"`
	SLADays    int    `json:"slaDays"`
	IsActive   bool   `json:"isActive"`
}

// CreateRequest is the payload for creating a catalog status.
type CreateRequest struct {
	StatusName string `json:"statusName" binding:"required,notblank,max=100"`
	SLADays    int    `json:"slaDays" binding:"required,gt=0"`
	IsActive   *bool  `json:"isActive"`
}

// UpdateRequest is the payload for updating a catalog status.
type UpdateRequest struct {
	StatusName string `json:"statusName" binding:"required,notblank,max=100"`
	SLADays    int    `json:"slaDays" binding:"required,gt=0"`
	IsActive   *bool  `json:"isActive"`
}

// ListResponse wraps a page of catalog statuses.
type ListResponse struct {
	Statuses []Status `json:"statuses"`
	Total    int      `json:"total"`
}
