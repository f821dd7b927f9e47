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

// Package model defines the data structures for organizations.
package model

// Organization is a data fiduciary tenant of the portal. RequestPageToken
// is the opaque token embedded in the organization's public submission URL.
type Organization struct {
	OrganizationID   int64  `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	IndustryID       int64  `json:"industryId"`
	ContactEmail     string `json:"contactEmail"`
	ContactPhone     string `json:"contactPhone,omitempty"`
	Address          string `json:"address,omitempty"`
	RequestPageToken string `json:"requestPageToken"`
}

// CreateRequest is the payload for registering an organization.
type CreateRequest struct {
	OrganizationName string `json:"organizationName" binding:"required,max=255"`
	IndustryID       int64  `json:"industryId" binding:"required,gt=0"`
	ContactEmail     string `json:"contactEmail" binding:"required,email"`
	ContactPhone     string `json:"contactPhone" binding:"max=20"`
	Address          string `json:"address" binding:"max=500"`
}

// UpdateRequest is the payload for updating an organization.
type UpdateRequest struct {
	OrganizationName string `json:"organizationName" binding:"required,max=255"`
	IndustryID       int64  `json:"industryId" binding:"required,gt=0"`
	ContactEmail     string `json:"contactEmail" binding:"required,email"`
	ContactPhone     string `json:"contactPhone" binding:"max=20"`
	Address          string `json:"address" binding:"max=500"`
}

// ListResponse wraps a page of organizations.
type ListResponse struct {
	Organizations []Organization `json:"organizations"`
	Total         int            `json:"total"`
}
