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

package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
)

// Resolve validates a proposed change against the current entity state and
// returns the resolved field updates plus the history entry to append.
//
// Validation order: emptiness, terminal-state guard, status transition,
// assignment permission. The first failure wins.
func Resolve(entity *Entity, change *Change, actor authn.Actor, deps Deps) (*Resolution, *serviceerror.ServiceError) {
	if change == nil || change.IsEmpty() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.NoChangeError,
			"No changes to make",
		)
	}

	current, ok := deps.Statuses.ByID(entity.StatusID)
	if !ok {
		return nil, serviceerror.CustomServiceError(
			serviceerror.InternalServerError,
			fmt.Sprintf("entity carries unknown status: %d", entity.StatusID),
		)
	}
	if deps.Lifecycle.IsClosedStatus(current.StatusName) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ConflictError,
			"entity is closed and can no longer be modified",
		)
	}

	// History always restates the full status and assignee chain, so the
	// entity's current status equals the newest entry's new status even
	// when the newest entry is a note. Only the creation row carries a
	// NULL old status.
	oldStatusID := entity.StatusID
	newStatusID := entity.StatusID
	resolution := &Resolution{
		NewStatusID:   entity.StatusID,
		NewStatusName: current.StatusName,
		NewAssigneeID: entity.AssignedToUserID,
		History: HistoryEntry{
			ChangeDate:          deps.Now,
			ChangedByUserID:     actor.UserID,
			OldStatusID:         &oldStatusID,
			NewStatusID:         &newStatusID,
			OldAssignedToUserID: entity.AssignedToUserID,
			NewAssignedToUserID: entity.AssignedToUserID,
			Comments:            strings.TrimSpace(change.Comments),
		},
	}

	if change.StatusChange != nil {
		if svcErr := resolveStatusChange(entity, change.StatusChange, deps, resolution); svcErr != nil {
			return nil, svcErr
		}
	}

	if change.AssignmentChange != nil {
		if svcErr := resolveAssignmentChange(entity, change.AssignmentChange, actor, resolution); svcErr != nil {
			return nil, svcErr
		}
	}

	// A change that restates the current state with no comments is a no-op.
	if !resolution.StatusChanged && !resolution.AssignmentChanged && resolution.History.Comments == "" {
		return nil, serviceerror.CustomServiceError(
			serviceerror.NoChangeError,
			"No changes to make",
		)
	}

	return resolution, nil
}

func resolveStatusChange(entity *Entity, sc *StatusChange, deps Deps, resolution *Resolution) *serviceerror.ServiceError {
	newStatus, ok := deps.Statuses.ByID(sc.NewStatusID)
	if !ok || !newStatus.IsActive {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.ValidationError,
			fmt.Sprintf("status is not a valid active status: %d", sc.NewStatusID),
		)
		svcErr.Code = codes.InvalidStatus
		return svcErr
	}

	if sc.NewStatusID == entity.StatusID {
		// Same status is not a transition; comments may still apply.
		return nil
	}

	resolution.StatusChanged = true
	resolution.NewStatusID = sc.NewStatusID
	resolution.NewStatusName = newStatus.StatusName
	newID := sc.NewStatusID
	resolution.History.NewStatusID = &newID

	if deps.Lifecycle.IsClosedStatus(newStatus.StatusName) {
		comments := strings.TrimSpace(sc.ClosureComments)
		if comments == "" {
			svcErr := serviceerror.CustomServiceError(
				serviceerror.ValidationError,
				"closure comments are required when closing",
			)
			svcErr.Code = codes.ClosureCommentMissing
			return svcErr
		}

		closedAt := deps.Now
		onTime := entity.CompletionDate == nil || !deps.Now.After(*entity.CompletionDate)
		resolution.IsClosure = true
		resolution.ClosedAt = &closedAt
		resolution.CompletedOnTime = &onTime
		resolution.ClosureComments = comments
		if resolution.History.Comments == "" {
			resolution.History.Comments = comments
		}
		return nil
	}

	if newStatus.SLADays > 0 {
		due := deps.Now.AddDate(0, 0, newStatus.SLADays)
		resolution.CompletionDate = &due
	}

	resolution.IsEscalation = deps.Lifecycle.IsEscalatedStatus(newStatus.StatusName)
	return nil
}

func resolveAssignmentChange(entity *Entity, ac *AssignmentChange, actor authn.Actor, resolution *Resolution) *serviceerror.ServiceError {
	if sameAssignee(entity.AssignedToUserID, ac.NewAssigneeID) {
		return nil
	}

	if !actor.IsAdmin() {
		return serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only administrators may change the assignment",
		)
	}

	resolution.AssignmentChanged = true
	resolution.NewAssigneeID = ac.NewAssigneeID
	resolution.History.NewAssignedToUserID = ac.NewAssigneeID
	return nil
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// DueDateFromSLA computes the due date for an entity entering the given
// status at the given time.
func DueDateFromSLA(now time.Time, slaDays int) time.Time {
	return now.AddDate(0, 0, slaDays)
}
