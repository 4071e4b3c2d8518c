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

package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
)

const maxTraceIDLength = 64

func GenerateTraceID() string {
	return uuid.New().String()
}

// AcceptTraceID returns the caller supplied id when it is short and made of URL safe
// characters, and a fresh id otherwise. Inbound ids end up in logs and error bodies.
func AcceptTraceID(candidate string) string {
	if candidate == "" || len(candidate) > maxTraceIDLength {
		return GenerateTraceID()
	}
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return GenerateTraceID()
		}
	}
	return candidate
}

// GetTraceID returns the trace id carried by ctx, or "".
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(constants.TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, constants.TraceIDContextKey, traceID)
}

// EnsureTraceID returns a context that carries a trace id, and that id. Runs started outside
// an HTTP request get a fresh one.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := GenerateTraceID()
	return WithTraceID(ctx, traceID), traceID
}
