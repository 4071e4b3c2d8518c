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

package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/orders/model"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type MockRegistryLookup struct {
	mock.Mock
}

func (m *MockRegistryLookup) LookupPersonID(code int64) (int64, bool, error) {
	args := m.Called(code)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

type MockPairRecorder struct {
	mock.Mock
}

func (m *MockPairRecorder) PairExists(senderID, receiverID int64) (bool, error) {
	args := m.Called(senderID, receiverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPairRecorder) CreatePair(senderID, receiverID int64) error {
	args := m.Called(senderID, receiverID)
	return args.Error(0)
}

func order(sender, guests string) model.OrderRow {
	return model.OrderRow{OrderCode: &sender, GuestList: &guests}
}

func TestResolveOrders_MixedGuestList(t *testing.T) {
	lookup := new(MockRegistryLookup)
	pairs := new(MockPairRecorder)
	lookup.On("LookupPersonID", int64(1)).Return(int64(10), true, nil)
	lookup.On("LookupPersonID", int64(2)).Return(int64(20), true, nil)
	lookup.On("LookupPersonID", int64(3)).Return(int64(30), true, nil)
	lookup.On("LookupPersonID", int64(4)).Return(int64(0), false, nil)
	pairs.On("PairExists", int64(10), mock.Anything).Return(false, nil)
	pairs.On("CreatePair", int64(10), int64(20)).Return(nil).Once()
	pairs.On("CreatePair", int64(10), int64(30)).Return(nil).Once()

	stats := model.NewImportStatistics("import-1")
	resolver := NewOrderResolver(lookup, pairs, constants.InvalidSenderDrop)
	require.NoError(t, resolver.ResolveOrders(context.Background(), []model.OrderRow{order("1", "2|3|4")}, stats))

	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 3, stats.TotalPairs)
	assert.Equal(t, 2, stats.SuccessfulPairs)
	assert.Equal(t, 1, stats.FailedPairs)
	assert.Equal(t, []int64{4}, stats.MissingReceivers)
	assert.Empty(t, stats.MissingSenders)
	assert.Equal(t, stats.TotalPairs, stats.SuccessfulPairs+stats.FailedPairs)
	lookup.AssertExpectations(t)
	pairs.AssertExpectations(t)
}

func TestResolveOrders_ExistingPairsFail(t *testing.T) {
	lookup := new(MockRegistryLookup)
	pairs := new(MockPairRecorder)
	lookup.On("LookupPersonID", int64(1)).Return(int64(10), true, nil)
	lookup.On("LookupPersonID", int64(2)).Return(int64(20), true, nil)
	pairs.On("PairExists", int64(10), int64(20)).Return(true, nil)

	stats := model.NewImportStatistics("import-2")
	resolver := NewOrderResolver(lookup, pairs, constants.InvalidSenderDrop)
	require.NoError(t, resolver.ResolveOrders(context.Background(), []model.OrderRow{order("1", "2")}, stats))

	assert.Zero(t, stats.SuccessfulPairs)
	assert.Equal(t, 1, stats.FailedPairs)
	pairs.AssertNotCalled(t, "CreatePair", mock.Anything, mock.Anything)
}

func TestResolveOrders_MissingSender(t *testing.T) {
	lookup := new(MockRegistryLookup)
	pairs := new(MockPairRecorder)
	lookup.On("LookupPersonID", int64(99)).Return(int64(0), false, nil)

	stats := model.NewImportStatistics("import-3")
	resolver := NewOrderResolver(lookup, pairs, constants.InvalidSenderDrop)
	rows := []model.OrderRow{order("99", "2|3"), order("99", "5")}
	require.NoError(t, resolver.ResolveOrders(context.Background(), rows, stats))

	assert.Equal(t, 2, stats.TotalOrders)
	assert.Zero(t, stats.TotalPairs, "guests of an unknown sender are not counted")
	assert.Equal(t, []int64{99}, stats.MissingSenders)
	lookup.AssertNumberOfCalls(t, "LookupPersonID", 2)
}

func TestResolveOrders_InvalidSenderPolicy(t *testing.T) {
	rows := []model.OrderRow{order("abc", "2"), order("abc", "3"), order("", "2")}

	t.Run("drop", func(t *testing.T) {
		lookup := new(MockRegistryLookup)
		stats := model.NewImportStatistics("import-4")
		resolver := NewOrderResolver(lookup, new(MockPairRecorder), constants.InvalidSenderDrop)
		require.NoError(t, resolver.ResolveOrders(context.Background(), rows, stats))

		assert.Zero(t, stats.TotalOrders)
		assert.Empty(t, stats.InvalidSenders)
		lookup.AssertNotCalled(t, "LookupPersonID", mock.Anything)
	})

	t.Run("count", func(t *testing.T) {
		stats := model.NewImportStatistics("import-5")
		resolver := NewOrderResolver(new(MockRegistryLookup), new(MockPairRecorder), constants.InvalidSenderCount)
		require.NoError(t, resolver.ResolveOrders(context.Background(), rows, stats))

		assert.Equal(t, 2, stats.TotalOrders)
		assert.Equal(t, []string{"abc"}, stats.InvalidSenders)
	})
}

func TestResolveOrders_NonIntegerReceiver(t *testing.T) {
	lookup := new(MockRegistryLookup)
	pairs := new(MockPairRecorder)
	lookup.On("LookupPersonID", int64(1)).Return(int64(10), true, nil)

	stats := model.NewImportStatistics("import-6")
	resolver := NewOrderResolver(lookup, pairs, constants.InvalidSenderDrop)
	require.NoError(t, resolver.ResolveOrders(context.Background(), []model.OrderRow{order("1", "x| |")}, stats))

	assert.Equal(t, 1, stats.TotalPairs)
	assert.Equal(t, 1, stats.FailedPairs)
	assert.Empty(t, stats.MissingReceivers)
}

func TestResolveOrders_ScientificAndHexCodesAreNotIntegers(t *testing.T) {
	lookup := new(MockRegistryLookup)
	pairs := new(MockPairRecorder)
	lookup.On("LookupPersonID", int64(1)).Return(int64(10), true, nil)

	stats := model.NewImportStatistics("import-10")
	resolver := NewOrderResolver(lookup, pairs, constants.InvalidSenderCount)
	rows := []model.OrderRow{order("1", "1e3|0x1p4|1_000"), order("1e3", "2")}
	require.NoError(t, resolver.ResolveOrders(context.Background(), rows, stats))

	assert.Equal(t, 3, stats.TotalPairs)
	assert.Equal(t, 3, stats.FailedPairs)
	assert.Zero(t, stats.SuccessfulPairs)
	assert.Empty(t, stats.MissingReceivers)
	assert.Equal(t, []string{"1e3"}, stats.InvalidSenders)
	lookup.AssertNotCalled(t, "LookupPersonID", int64(1000))
	lookup.AssertNotCalled(t, "LookupPersonID", int64(16))
	lookup.AssertNumberOfCalls(t, "LookupPersonID", 1)
	pairs.AssertNotCalled(t, "CreatePair", mock.Anything, mock.Anything)
}

func TestResolveOrders_StopsOnLookupError(t *testing.T) {
	lookup := new(MockRegistryLookup)
	lookup.On("LookupPersonID", int64(1)).Return(int64(0), false, errors.New("connection reset"))

	stats := model.NewImportStatistics("import-7")
	resolver := NewOrderResolver(lookup, new(MockPairRecorder), constants.InvalidSenderDrop)
	err := resolver.ResolveOrders(context.Background(), []model.OrderRow{order("1", "2"), order("1", "3")}, stats)

	assert.EqualError(t, err, "connection reset")
	lookup.AssertNumberOfCalls(t, "LookupPersonID", 1)
}

func TestResolveOrders_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lookup := new(MockRegistryLookup)
	resolver := NewOrderResolver(lookup, new(MockPairRecorder), constants.InvalidSenderDrop)
	err := resolver.ResolveOrders(ctx, []model.OrderRow{order("1", "2")}, model.NewImportStatistics("import-8"))

	assert.ErrorIs(t, err, context.Canceled)
	lookup.AssertNotCalled(t, "LookupPersonID", mock.Anything)
}

func TestImportStatistics_Preview(t *testing.T) {
	stats := model.NewImportStatistics("import-9")
	for _, c := range []int64{364, 270, 5, 270, 12, 8, 40} {
		stats.AddMissingSender(c)
	}
	stats.AddMissingReceiver(7)

	assert.Equal(t, []int64{5, 8, 12, 40, 270, 364}, stats.MissingSenders)
	preview := stats.Preview(constants.DefaultPreviewCap)
	assert.Equal(t, "5, 8, 12, 40, 270, ... and 1 more", preview.MissingSenders)
	assert.Equal(t, "7", preview.MissingReceivers)
	assert.Equal(t, "", model.PreviewCodes(nil, 5))
}
