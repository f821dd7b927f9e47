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

package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/complyark/dpdpa-portal/internal/dashboard/model"
	"github.com/complyark/dpdpa-portal/internal/status"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// DashboardServiceInterface defines the contract for dashboard aggregation.
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, actor authn.Actor, organizationID int64) (*model.Dashboard, *serviceerror.ServiceError)
	GetTotals(ctx context.Context, actor authn.Actor, organizationID int64) (*model.Totals, *serviceerror.ServiceError)
	GetStatusDistribution(ctx context.Context, actor authn.Actor, organizationID int64) ([]model.StatusCount, *serviceerror.ServiceError)
	GetEscalated(ctx context.Context, actor authn.Actor, organizationID int64) ([]model.WorkItem, *serviceerror.ServiceError)
	GetUpcomingDue(ctx context.Context, actor authn.Actor, organizationID int64) ([]model.WorkItem, *serviceerror.ServiceError)
}

// dashboardService implements DashboardServiceInterface
type dashboardService struct {
	stores       *stores.StoreRegistry
	lifecycleCfg *config.LifecycleConfig
	logger       *log.Logger
}

func newDashboardService(registry *stores.StoreRegistry, lifecycleCfg *config.LifecycleConfig) DashboardServiceInterface {
	return &dashboardService{
		stores:       registry,
		lifecycleCfg: lifecycleCfg,
		logger:       log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DashboardService")),
	}
}

// resolveScope pins non-spanning callers to their own organization and
// rejects cross-organization access. Returns the effective organization id,
// where 0 means all organizations.
func (s *dashboardService) resolveScope(actor authn.Actor, organizationID int64) (int64, *serviceerror.ServiceError) {
	if organizationID == 0 && !actor.SpansOrganizations() {
		organizationID = actor.OrganizationID
	}
	if organizationID != 0 && !actor.CanAccessOrganization(organizationID) {
		return 0, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not view this organization's dashboard",
		)
	}
	return organizationID, nil
}

// GetTotals returns the workload summary counters for the scoped view.
func (s *dashboardService) GetTotals(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) (*model.Totals, *serviceerror.ServiceError) {
	orgID, svcErr := s.resolveScope(actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	totals, err := s.stores.Dashboard.(DashboardStore).GetTotals(ctx, orgID)
	if err != nil {
		return nil, dashboardQueryError("totals", err)
	}
	return totals, nil
}

// GetStatusDistribution returns the combined request and grievance counts
// per catalog status, with each slice's share of the total.
func (s *dashboardService) GetStatusDistribution(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) ([]model.StatusCount, *serviceerror.ServiceError) {
	orgID, svcErr := s.resolveScope(actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	distribution, err := s.stores.Dashboard.(DashboardStore).CountByStatus(ctx, orgID)
	if err != nil {
		return nil, dashboardQueryError("status distribution", err)
	}
	applyPercentages(distribution)
	return distribution, nil
}

// GetEscalated returns escalated work items, soonest due first.
func (s *dashboardService) GetEscalated(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) ([]model.WorkItem, *serviceerror.ServiceError) {
	orgID, svcErr := s.resolveScope(actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	escalated, err := s.stores.Status.(status.StatusStore).GetByName(ctx, string(s.lifecycleCfg.GetEscalatedStatus()))
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.InternalServerError,
			fmt.Sprintf("escalated status is not configured: %v", err),
		)
	}

	items, err := s.stores.Dashboard.(DashboardStore).ListEscalated(ctx, orgID, escalated.StatusID)
	if err != nil {
		return nil, dashboardQueryError("escalated list", err)
	}
	applyDaysRemaining(items, time.Now().UTC())
	return items, nil
}

// GetUpcomingDue returns open work items due within the configured window,
// soonest due first.
func (s *dashboardService) GetUpcomingDue(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) ([]model.WorkItem, *serviceerror.ServiceError) {
	orgID, svcErr := s.resolveScope(actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	items, err := s.stores.Dashboard.(DashboardStore).ListUpcomingDue(ctx, orgID, s.lifecycleCfg.DueSoonWindowDays)
	if err != nil {
		return nil, dashboardQueryError("upcoming due list", err)
	}
	applyDaysRemaining(items, time.Now().UTC())
	return items, nil
}

// GetDashboard aggregates the full workload view for one organization, or
// for all organizations when a super administrator passes organizationID 0.
func (s *dashboardService) GetDashboard(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) (*model.Dashboard, *serviceerror.ServiceError) {
	totals, svcErr := s.GetTotals(ctx, actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	distribution, svcErr := s.GetStatusDistribution(ctx, actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	escalatedItems, svcErr := s.GetEscalated(ctx, actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	upcoming, svcErr := s.GetUpcomingDue(ctx, actor, organizationID)
	if svcErr != nil {
		return nil, svcErr
	}

	return &model.Dashboard{
		Totals:             *totals,
		StatusDistribution: distribution,
		Escalated:          escalatedItems,
		UpcomingDue:        upcoming,
	}, nil
}

// applyPercentages fills in each slice's share of the combined workload,
// rounded to one decimal place.
func applyPercentages(distribution []model.StatusCount) {
	var total int64
	for i := range distribution {
		total += distribution[i].Count
	}
	if total == 0 {
		return
	}
	for i := range distribution {
		pct := float64(distribution[i].Count) * 100 / float64(total)
		distribution[i].Percentage = math.Round(pct*10) / 10
	}
}

// applyDaysRemaining derives the whole days left until each item's due
// date. Overdue items report negative days.
func applyDaysRemaining(items []model.WorkItem, now time.Time) {
	for i := range items {
		if items[i].CompletionDate == nil {
			continue
		}
		remaining := items[i].CompletionDate.Sub(now)
		items[i].DaysRemaining = int(math.Ceil(remaining.Hours() / 24))
	}
}

func dashboardQueryError(part string, err error) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(
		serviceerror.DatabaseError,
		fmt.Sprintf("failed to aggregate %s: %v", part, err),
	)
}
