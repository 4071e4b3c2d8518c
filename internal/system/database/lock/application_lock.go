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

package lock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv" // For hashing string keys to integers
	"sync"

	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/scripts"
	"github.com/wso2/resident-reconciliation-service/internal/system/errors"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

// UploadLock admits one upload of a kind at a time.
type UploadLock interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(key string) error
}

// NewUploadLock returns the lock implementation for the configured database type.
func NewUploadLock(dbType string) UploadLock {

	if dbType == constants.PostgresDBType {
		return NewPostgresLock()
	}
	return NewLocalLock()
}

var (
	sharedLocks   = map[string]UploadLock{}
	sharedLocksMu sync.Mutex
)

// GetUploadLock returns the process wide lock for dbType. Every upload path must go through
// the same instance for the local lock to exclude anything.
func GetUploadLock(dbType string) UploadLock {

	sharedLocksMu.Lock()
	defer sharedLocksMu.Unlock()

	if l, ok := sharedLocks[dbType]; ok {
		return l
	}
	l := NewUploadLock(dbType)
	sharedLocks[dbType] = l
	return l
}

// PostgresLock implements UploadLock using PostgreSQL advisory locks. Advisory locks are
// session scoped, so each held key pins the connection it was taken on until Release.
type PostgresLock struct {
	mu    sync.Mutex
	conns map[string]*sql.Conn
}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{conns: make(map[string]*sql.Conn)}
}

// PostgreSQL advisory locks use bigint or two integers. We'll use a single bigint.
func generateLockKey(key string) (int64, error) {

	logger := log.GetLogger()
	h := fnv.New64a() // FNV-1a is a good general-purpose non-cryptographic hash
	_, err := h.Write([]byte(key))
	if err != nil {
		errorMsg := fmt.Sprintf("failed to hash lock key '%s'", key)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors.NewServerError(errors.LOCK_KEY_GEN.WithDescription(errorMsg), err)
	}
	return int64(h.Sum64()), nil // Cast to int64 for pg_advisory_lock
}

func (l *PostgresLock) Acquire(ctx context.Context, key string) (bool, error) {

	logger := log.GetLogger()
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.conns[key]; held {
		return false, nil
	}

	lockID, err := generateLockKey(key)
	if err != nil {
		return false, err
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed during DB client creation for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.DB_CLIENT_INIT.WithDescription(errorMsg), err)
	}
	conn, err := dbClient.Conn(ctx)
	if err != nil {
		errorMsg := "Failed to reserve a connection for the advisory lock."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.LOCK_ACQUIRE.WithDescription(errorMsg), err)
	}

	var acquired bool
	err = conn.QueryRowContext(ctx, scripts.TryAdvisoryLock[constants.PostgresDBType], lockID).Scan(&acquired)
	if err != nil {
		_ = conn.Close()
		errorMsg := "Failed to execute pg_try_advisory_lock"
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.LOCK_ACQUIRE.WithDescription(errorMsg), err)
	}
	if !acquired {
		_ = conn.Close()
		logger.Debug(fmt.Sprintf("Advisory lock %d is held by another session", lockID), log.String("key", key))
		return false, nil
	}

	l.conns[key] = conn
	logger.Debug(fmt.Sprintf("Advisory lock acquired for lock id: %d", lockID), log.String("key", key))
	return true, nil
}

func (l *PostgresLock) Release(key string) error {

	logger := log.GetLogger()
	l.mu.Lock()
	defer l.mu.Unlock()

	conn, held := l.conns[key]
	if !held {
		return nil
	}
	delete(l.conns, key)
	defer conn.Close()

	lockID, err := generateLockKey(key)
	if err != nil {
		return err
	}

	var released bool
	err = conn.QueryRowContext(context.Background(), scripts.AdvisoryUnlock[constants.PostgresDBType], lockID).
		Scan(&released)
	if err != nil || !released {
		errorMsg := "pg_advisory_unlock failed"
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.LOCK_RELEASE.WithDescription(errorMsg), err)
	}
	logger.Debug(fmt.Sprintf("Advisory lock released for lock id: %d", lockID))
	return nil
}

// LocalLock is an in-process UploadLock for single node sqlite deployments.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]bool)}
}

func (l *LocalLock) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *LocalLock) Release(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
	return nil
}
