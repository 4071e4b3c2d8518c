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

package client

import (
	"database/sql"
	"errors"
)

// TxClientInterface is a QueryExecutor bound to one transaction.
type TxClientInterface interface {
	QueryExecutor
	Commit() error
	Rollback() error
}

// TxClient runs statements inside a single sql.Tx.
type TxClient struct {
	tx *sql.Tx
}

// ExecuteQuery executes a query inside the transaction.
func (t *TxClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {

	rows, err := t.tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func (t *TxClient) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Rolling back an already finished transaction is not an error.
func (t *TxClient) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
