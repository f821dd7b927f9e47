package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statusmodel "github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
)

const (
	statusSubmitted  = int64(1)
	statusInProgress = int64(2)
	statusEscalated  = int64(3)
	statusClosed     = int64(4)
	statusRetired    = int64(5)
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func testDeps() Deps {
	return Deps{
		Lifecycle: &config.LifecycleConfig{
			StatusMappings: config.StatusMappings{
				SubmittedStatus: "Submitted",
				EscalatedStatus: "Escalated",
				ClosedStatus:    "Closed",
				OverdueStatus:   "Escalated",
			},
			DueSoonWindowDays: 7,
		},
		Statuses: NewStatusIndex([]statusmodel.Status{
			{StatusID: statusSubmitted, StatusName: "Submitted", SLADays: 30, IsActive: true},
			{StatusID: statusInProgress, StatusName: "In Progress", SLADays: 15, IsActive: true},
			{StatusID: statusEscalated, StatusName: "Escalated", SLADays: 5, IsActive: true},
			{StatusID: statusClosed, StatusName: "Closed", SLADays: 1, IsActive: true},
			{StatusID: statusRetired, StatusName: "Retired", SLADays: 1, IsActive: false},
		}),
		Now: testNow,
	}
}

func openEntity() *Entity {
	due := testNow.AddDate(0, 0, 10)
	assignee := int64(7)
	return &Entity{
		ID:               100,
		OrganizationID:   1,
		StatusID:         statusSubmitted,
		AssignedToUserID: &assignee,
		CreatedAt:        testNow.AddDate(0, 0, -20),
		CompletionDate:   &due,
	}
}

var admin = authn.Actor{UserID: 1, OrganizationID: 1, Role: authn.RoleAdmin}
var staff = authn.Actor{UserID: 7, OrganizationID: 1, Role: authn.RoleUser}

func TestResolve_EmptyChangeRejected(t *testing.T) {
	_, svcErr := Resolve(openEntity(), &Change{}, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.NoChange, svcErr.Code)
	assert.Equal(t, "No changes to make", svcErr.ErrorDescription)
}

func TestResolve_RestatedStateIsNoChange(t *testing.T) {
	entity := openEntity()
	same := *entity.AssignedToUserID
	change := &Change{
		StatusChange:     &StatusChange{NewStatusID: entity.StatusID},
		AssignmentChange: &AssignmentChange{NewAssigneeID: &same},
	}

	_, svcErr := Resolve(entity, change, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.NoChange, svcErr.Code)
}

func TestResolve_StatusTransitionRecomputesDueDate(t *testing.T) {
	entity := openEntity()
	change := &Change{StatusChange: &StatusChange{NewStatusID: statusInProgress}}

	resolution, svcErr := Resolve(entity, change, staff, testDeps())
	require.Nil(t, svcErr)

	assert.True(t, resolution.StatusChanged)
	assert.Equal(t, statusInProgress, resolution.NewStatusID)
	require.NotNil(t, resolution.CompletionDate)
	assert.Equal(t, testNow.AddDate(0, 0, 15), *resolution.CompletionDate)
	assert.False(t, resolution.IsClosure)
	assert.False(t, resolution.IsEscalation)

	require.NotNil(t, resolution.History.OldStatusID)
	require.NotNil(t, resolution.History.NewStatusID)
	assert.Equal(t, statusSubmitted, *resolution.History.OldStatusID)
	assert.Equal(t, statusInProgress, *resolution.History.NewStatusID)
	assert.Equal(t, testNow, resolution.History.ChangeDate)
	assert.Equal(t, staff.UserID, resolution.History.ChangedByUserID)
}

func TestResolve_UnknownStatusRejected(t *testing.T) {
	change := &Change{StatusChange: &StatusChange{NewStatusID: 999}}

	_, svcErr := Resolve(openEntity(), change, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.InvalidStatus, svcErr.Code)
}

func TestResolve_InactiveStatusRejected(t *testing.T) {
	change := &Change{StatusChange: &StatusChange{NewStatusID: statusRetired}}

	_, svcErr := Resolve(openEntity(), change, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.InvalidStatus, svcErr.Code)
}

func TestResolve_ClosureRequiresComments(t *testing.T) {
	change := &Change{StatusChange: &StatusChange{NewStatusID: statusClosed}}

	_, svcErr := Resolve(openEntity(), change, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.ClosureCommentMissing, svcErr.Code)
}

func TestResolve_ClosureBeforeDueDateIsOnTime(t *testing.T) {
	entity := openEntity()
	change := &Change{StatusChange: &StatusChange{
		NewStatusID:     statusClosed,
		ClosureComments: "Data copy delivered to the data principal",
	}}

	resolution, svcErr := Resolve(entity, change, admin, testDeps())
	require.Nil(t, svcErr)

	assert.True(t, resolution.IsClosure)
	require.NotNil(t, resolution.CompletedOnTime)
	assert.True(t, *resolution.CompletedOnTime)
	require.NotNil(t, resolution.ClosedAt)
	assert.Equal(t, testNow, *resolution.ClosedAt)
	assert.Equal(t, "Data copy delivered to the data principal", resolution.ClosureComments)
	// Closure comments double as the history comment when none was given.
	assert.Equal(t, "Data copy delivered to the data principal", resolution.History.Comments)
}

func TestResolve_ClosureAfterDueDateIsLate(t *testing.T) {
	entity := openEntity()
	past := testNow.AddDate(0, 0, -3)
	entity.CompletionDate = &past

	change := &Change{StatusChange: &StatusChange{
		NewStatusID:     statusClosed,
		ClosureComments: "Closed after follow-up",
	}}

	resolution, svcErr := Resolve(entity, change, admin, testDeps())
	require.Nil(t, svcErr)
	require.NotNil(t, resolution.CompletedOnTime)
	assert.False(t, *resolution.CompletedOnTime)
}

func TestResolve_ClosedEntityRejectsFurtherChanges(t *testing.T) {
	entity := openEntity()
	entity.StatusID = statusClosed

	change := &Change{Comments: "follow-up note"}

	_, svcErr := Resolve(entity, change, admin, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.ConflictError, svcErr.Code)
}

func TestResolve_EscalationFlagged(t *testing.T) {
	change := &Change{StatusChange: &StatusChange{NewStatusID: statusEscalated}}

	resolution, svcErr := Resolve(openEntity(), change, admin, testDeps())
	require.Nil(t, svcErr)
	assert.True(t, resolution.IsEscalation)
	require.NotNil(t, resolution.CompletionDate)
	assert.Equal(t, testNow.AddDate(0, 0, 5), *resolution.CompletionDate)
}

func TestResolve_ReassignmentByAdmin(t *testing.T) {
	entity := openEntity()
	newAssignee := int64(9)
	change := &Change{AssignmentChange: &AssignmentChange{NewAssigneeID: &newAssignee}}

	resolution, svcErr := Resolve(entity, change, admin, testDeps())
	require.Nil(t, svcErr)

	assert.True(t, resolution.AssignmentChanged)
	require.NotNil(t, resolution.NewAssigneeID)
	assert.Equal(t, newAssignee, *resolution.NewAssigneeID)
	require.NotNil(t, resolution.History.OldAssignedToUserID)
	assert.Equal(t, int64(7), *resolution.History.OldAssignedToUserID)
	require.NotNil(t, resolution.History.NewAssignedToUserID)
	assert.Equal(t, newAssignee, *resolution.History.NewAssignedToUserID)
}

func TestResolve_ReassignmentByNonAdminForbidden(t *testing.T) {
	newAssignee := int64(9)
	change := &Change{AssignmentChange: &AssignmentChange{NewAssigneeID: &newAssignee}}

	_, svcErr := Resolve(openEntity(), change, staff, testDeps())
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestResolve_ClearingAssignment(t *testing.T) {
	entity := openEntity()
	change := &Change{AssignmentChange: &AssignmentChange{NewAssigneeID: nil}}

	resolution, svcErr := Resolve(entity, change, admin, testDeps())
	require.Nil(t, svcErr)
	assert.True(t, resolution.AssignmentChanged)
	assert.Nil(t, resolution.NewAssigneeID)
	assert.Nil(t, resolution.History.NewAssignedToUserID)
}

func TestResolve_CommentOnlyChange(t *testing.T) {
	change := &Change{Comments: "  spoke with the data principal  "}

	entity := openEntity()
	resolution, svcErr := Resolve(entity, change, staff, testDeps())
	require.Nil(t, svcErr)
	assert.False(t, resolution.StatusChanged)
	assert.False(t, resolution.AssignmentChanged)
	assert.Equal(t, "spoke with the data principal", resolution.History.Comments)

	// A note restates the current status and assignee, keeping the chain
	// intact: the newest entry's new status is always the entity's status.
	require.NotNil(t, resolution.History.OldStatusID)
	require.NotNil(t, resolution.History.NewStatusID)
	assert.Equal(t, entity.StatusID, *resolution.History.OldStatusID)
	assert.Equal(t, entity.StatusID, *resolution.History.NewStatusID)
	require.NotNil(t, resolution.History.NewAssignedToUserID)
	assert.Equal(t, *entity.AssignedToUserID, *resolution.History.NewAssignedToUserID)
}

func TestResolve_CombinedStatusAndAssignment(t *testing.T) {
	entity := openEntity()
	newAssignee := int64(11)
	change := &Change{
		StatusChange:     &StatusChange{NewStatusID: statusInProgress},
		AssignmentChange: &AssignmentChange{NewAssigneeID: &newAssignee},
		Comments:         "picked up for processing",
	}

	resolution, svcErr := Resolve(entity, change, admin, testDeps())
	require.Nil(t, svcErr)
	assert.True(t, resolution.StatusChanged)
	assert.True(t, resolution.AssignmentChanged)
	assert.Equal(t, "picked up for processing", resolution.History.Comments)
	require.NotNil(t, resolution.History.OldStatusID)
	require.NotNil(t, resolution.History.OldAssignedToUserID)
}
