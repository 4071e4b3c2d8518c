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

package errors

import (
	"errors"
	"fmt"
)

// ErrorMessage is one entry of the MMS error code table.
type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
	TraceID     string `json:"trace_id,omitempty"`
}

// ClientError is rejected input. It never carries a cause and maps to StatusCode.
type ClientError struct {
	ErrorMessage
	StatusCode int
}

// ServerError is a storage or engine failure wrapping its cause.
type ServerError struct {
	ErrorMessage
	Err error
}

func (e *ServerError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func (e *ClientError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Description)
}

func NewServerError(msg ErrorMessage, cause error) *ServerError {
	return &ServerError{ErrorMessage: msg, Err: cause}
}

func NewServerErrorWithTraceID(msg ErrorMessage, cause error, traceID string) *ServerError {
	msg.TraceID = traceID
	return NewServerError(msg, cause)
}

func NewClientError(msg ErrorMessage, statusCode int) *ClientError {
	return &ClientError{ErrorMessage: msg, StatusCode: statusCode}
}

func NewClientErrorWithTraceID(msg ErrorMessage, statusCode int, traceID string) *ClientError {
	msg.TraceID = traceID
	return NewClientError(msg, statusCode)
}

// WithDescription returns a copy of the message with the given description.
func (msg ErrorMessage) WithDescription(description string) ErrorMessage {
	msg.Description = description
	return msg
}

// CodeOf returns the MMS code of the outermost Client or ServerError in the chain, or ""
// when the chain holds neither.
func CodeOf(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Code
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Code
	}
	return ""
}

// HasCode reports whether err carries the code of msg.
func HasCode(err error, msg ErrorMessage) bool {
	return err != nil && CodeOf(err) == msg.Code
}
