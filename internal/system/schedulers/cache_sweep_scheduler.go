/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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
package schedulers

import (
	"context"
	"time"

	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// StartCacheSweepScheduler sweeps the cache every interval until ctx is done. It blocks, so
// callers run it in its own goroutine.
func StartCacheSweepScheduler(ctx context.Context, name string, sweeper Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := log.GetLogger().With(log.String("cache", name))
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Cache sweep scheduler stopped")
			return
		case <-ticker.C:
			if removed := sweeper.Sweep(); removed > 0 {
				logger.Debug("Expired cache entries removed", log.Int("removed", removed))
			}
		}
	}
}
