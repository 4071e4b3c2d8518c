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

package utils

import (
	"net/http"

	sysContext "github.com/wso2/resident-reconciliation-service/internal/system/context"
)

// TraceIDHeader carries the trace id in requests and responses.
const TraceIDHeader = "X-Trace-Id"

// WithTrace attaches a trace id to every request context, reusing a well formed X-Trace-Id.
func WithTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := sysContext.AcceptTraceID(r.Header.Get(TraceIDHeader))
		w.Header().Set(TraceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(sysContext.WithTraceID(r.Context(), traceID)))
	})
}
