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

// Package lifecycle implements the shared state machine for data principal
// requests and grievances. Resolve validates a proposed change against the
// current entity state and produces the resulting field updates and the
// history entry to append; it performs no I/O, so the same rules apply to
// both entity kinds and to the background overdue sweep.
package lifecycle

import (
	"time"

	statusmodel "github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/config"
)

// Entity is the lifecycle view of a request or grievance.
type Entity struct {
	ID               int64
	OrganizationID   int64
	StatusID         int64
	AssignedToUserID *int64
	CreatedAt        time.Time
	CompletionDate   *time.Time
	ClosedAt         *time.Time
}

// StatusChange moves the entity to a new catalog status. ClosureComments
// is required when the new status is the terminal closed state.
type StatusChange struct {
	NewStatusID     int64
	ClosureComments string
}

// AssignmentChange reassigns the entity. A nil NewAssigneeID clears the
// assignment.
type AssignmentChange struct {
	NewAssigneeID *int64
}

// Change is a proposed lifecycle update. Any combination of the three
// parts may be present, but at least one must be.
type Change struct {
	StatusChange     *StatusChange
	AssignmentChange *AssignmentChange
	Comments         string
}

// IsEmpty reports whether the change carries nothing to apply.
func (c *Change) IsEmpty() bool {
	return c.StatusChange == nil && c.AssignmentChange == nil && c.Comments == ""
}

// HistoryEntry is the audit record a resolved change appends. The status
// and assignee pairs restate the current values when unchanged, so a
// note-only entry still carries the chain; only the creation row has a
// NULL old status.
type HistoryEntry struct {
	ChangeDate          time.Time
	ChangedByUserID     int64
	OldStatusID         *int64
	NewStatusID         *int64
	OldAssignedToUserID *int64
	NewAssignedToUserID *int64
	Comments            string
}

// Resolution is the outcome of validating a change: the field updates to
// persist and the signals the caller uses for notifications.
type Resolution struct {
	StatusChanged     bool
	AssignmentChanged bool

	NewStatusID   int64
	NewStatusName string
	NewAssigneeID *int64

	// Recomputed due date when the status changed to a non-terminal state.
	CompletionDate *time.Time

	// Closure outcome, set only when the change closes the entity.
	IsClosure       bool
	ClosedAt        *time.Time
	CompletedOnTime *bool
	ClosureComments string

	// IsEscalation is set when the new status is the escalated state.
	IsEscalation bool

	History HistoryEntry
}

// StatusLookup resolves catalog statuses during change resolution. The
// caller loads the catalog once and serves lookups from memory.
type StatusLookup interface {
	ByID(statusID int64) (*statusmodel.Status, bool)
}

// Deps carries everything Resolve needs besides the entity and the change.
type Deps struct {
	Lifecycle *config.LifecycleConfig
	Statuses  StatusLookup
	Now       time.Time
}

// StatusIndex is a map-backed StatusLookup.
type StatusIndex map[int64]*statusmodel.Status

// ByID implements StatusLookup.
func (idx StatusIndex) ByID(statusID int64) (*statusmodel.Status, bool) {
	s, ok := idx[statusID]
	return s, ok
}

// NewStatusIndex builds a StatusIndex from a catalog listing.
func NewStatusIndex(statuses []statusmodel.Status) StatusIndex {
	idx := make(StatusIndex, len(statuses))
	for i := range statuses {
		idx[statuses[i].StatusID] = &statuses[i]
	}
	return idx
}
