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

package codes

// Error codes for the DPDPA Compliance Portal
const (
	// General errors
	InternalServerError = "DPE-5000"
	DatabaseError       = "DPE-5001"
	InvalidRequest      = "DPE-4000"
	ValidationError     = "DPE-4001"
	Forbidden           = "DPE-4003"
	ResourceNotFound    = "DPE-4004"
	ConflictError       = "DPE-4009"
	NoChange            = "DPE-4010"

	// Request/grievance lifecycle errors
	RequestNotFound       = "DPE-4040"
	GrievanceNotFound     = "DPE-4041"
	InvalidStatus         = "DPE-4042"
	ClosureCommentMissing = "DPE-4043"
	AssigneeInvalid       = "DPE-4044"
	RequestCreationFailed = "DPE-5010"
	RequestUpdateFailed   = "DPE-5011"

	GrievanceCreationFailed = "DPE-5012"
	GrievanceUpdateFailed   = "DPE-5013"

	// Status catalog errors
	StatusNotFound       = "DPE-4050"
	StatusNameTaken      = "DPE-4051"
	StatusInUse          = "DPE-4052"
	StatusCreationFailed = "DPE-5030"

	// Notification errors
	TemplateNotFound   = "DPE-4060"
	NotificationFailed = "DPE-5020"
)
