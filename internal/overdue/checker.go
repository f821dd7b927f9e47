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

// Package overdue runs the periodic sweep that escalates open requests and
// grievances whose due date has passed.
package overdue

import (
	"context"
	"sync"
	"time"

	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/log"
)

// Escalator is the lifecycle operation the sweep invokes on each module.
type Escalator interface {
	EscalateOverdue(ctx context.Context) (int, *serviceerror.ServiceError)
}

// Checker periodically escalates overdue work.
type Checker struct {
	period     time.Duration
	escalators map[string]Escalator
	logger     *log.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewChecker creates a sweep over the given escalators, keyed by a label
// used in logs.
func NewChecker(period time.Duration, escalators map[string]Escalator) *Checker {
	return &Checker{
		period:     period,
		escalators: escalators,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "OverdueChecker")),
	}
}

// Start launches the sweep loop. The first sweep runs immediately so a
// restart does not delay escalation by a full period.
func (c *Checker) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)

		c.sweep(ctx)

		ticker := time.NewTicker(c.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep(ctx)
			}
		}
	}()

	c.logger.Info("Overdue checker started", log.String("period", c.period.String()))
}

// Stop cancels the sweep loop and waits for any in-flight sweep to finish.
func (c *Checker) Stop() {
	c.once.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		if c.done != nil {
			<-c.done
		}
		c.logger.Info("Overdue checker stopped")
	})
}

func (c *Checker) sweep(ctx context.Context) {
	for label, escalator := range c.escalators {
		count, svcErr := escalator.EscalateOverdue(ctx)
		if svcErr != nil {
			c.logger.Error("Overdue sweep failed",
				log.String("target", label),
				log.String("error", svcErr.ErrorDescription),
			)
			continue
		}
		if count > 0 {
			c.logger.Info("Escalated overdue work",
				log.String("target", label),
				log.Int("count", count),
			)
		}
	}
}
