// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/s3_uploader/pkg/storage"
)

// MockObjectStore is a mock implementation of the storage.ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

// Upload provides a mock function with given fields: ctx, localPath, bucket, key
func (m *MockObjectStore) Upload(ctx context.Context, localPath string, bucket string, key string) error {
	ret := m.Called(ctx, localPath, bucket, key)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) error); ok {
		r0 = rf(ctx, localPath, bucket, key)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListObjects provides a mock function with given fields: ctx, bucket, maxKeys
func (m *MockObjectStore) ListObjects(ctx context.Context, bucket string, maxKeys int32) ([]storage.ObjectInfo, error) {
	ret := m.Called(ctx, bucket, maxKeys)

	var r0 []storage.ObjectInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int32) ([]storage.ObjectInfo, error)); ok {
		return rf(ctx, bucket, maxKeys)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int32) []storage.ObjectInfo); ok {
		r0 = rf(ctx, bucket, maxKeys)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]storage.ObjectInfo)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int32) error); ok {
		r1 = rf(ctx, bucket, maxKeys)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockObjectStore creates a new instance of MockObjectStore
func NewMockObjectStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockObjectStore {
	mock_1 := &MockObjectStore{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}
