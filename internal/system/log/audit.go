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

package log

import (
	"encoding/json"
	"log/slog"
	"time"
)

// AuditEvent is one entry of the registry audit trail.
type AuditEvent struct {
	RecordedAt    string      `json:"recordedAt"`
	InitiatorID   string      `json:"initiatorId"`
	InitiatorType string      `json:"initiatorType"`
	TargetID      string      `json:"targetId"`
	TargetType    string      `json:"targetType"`
	ActionID      string      `json:"actionId"`
	TraceID       string      `json:"traceId,omitempty"`
	Data          interface{} `json:"data,omitempty"`
}

// Audit writes the event at info level. The action and target are also emitted as plain
// attributes so log queries can filter without decoding the payload.
func (l *Logger) Audit(event AuditEvent) {
	if event.RecordedAt == "" {
		event.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		l.Error("Failed to marshal audit event", String("action_id", event.ActionID), Error(err))
		return
	}
	l.internal.Info("AUDIT",
		slog.String("action_id", event.ActionID),
		slog.String("target_type", event.TargetType),
		slog.String("audit_event", string(payload)))
}

// Action ids.
const (
	ActionInsertResident       = "resident-insert"
	ActionMergeResident        = "resident-merge"
	ActionPartialMatchResident = "resident-partial-match"
	ActionSkipResident         = "resident-skip"

	ActionCreateDeliveryPair = "delivery-pair-create"

	ActionResidentUpload         = "resident-upload"
	ActionOrderUpload            = "order-upload"
	ActionOuterOrderDistribution = "outer-order-distribution"
)

const (
	InitiatorTypeUser   = "user"
	InitiatorTypeSystem = "system"
)

const (
	TargetTypeResident     = "resident"
	TargetTypeDeliveryPair = "delivery-pair"
	TargetTypeUpload       = "upload"
)
