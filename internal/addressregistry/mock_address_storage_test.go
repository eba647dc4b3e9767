package addressregistry

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// AddressStorageMock is a mock type for the AddressStorage type
type AddressStorageMock struct {
	mock.Mock
}

type AddressStorageMock_Expecter struct {
	mock *mock.Mock
}

func (_m *AddressStorageMock) EXPECT() *AddressStorageMock_Expecter {
	return &AddressStorageMock_Expecter{mock: &_m.Mock}
}

// DeleteAddress provides a mock function with given fields: ctx, label
func (_m *AddressStorageMock) DeleteAddress(ctx context.Context, label string) error {
	ret := _m.Called(ctx, label)

	if len(ret) == 0 {
		panic("no return value specified for DeleteAddress")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, label)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// AddressStorageMock_DeleteAddress_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteAddress'
type AddressStorageMock_DeleteAddress_Call struct {
	*mock.Call
}

// DeleteAddress is a helper method to define mock.On call
//   - ctx context.Context
//   - label string
func (_e *AddressStorageMock_Expecter) DeleteAddress(ctx interface{}, label interface{}) *AddressStorageMock_DeleteAddress_Call {
	return &AddressStorageMock_DeleteAddress_Call{Call: _e.mock.On("DeleteAddress", ctx, label)}
}

func (_c *AddressStorageMock_DeleteAddress_Call) Return(_a0 error) *AddressStorageMock_DeleteAddress_Call {
	_c.Call.Return(_a0)
	return _c
}

// ListAddresses provides a mock function with given fields: ctx
func (_m *AddressStorageMock) ListAddresses(ctx context.Context) (map[string]string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListAddresses")
	}

	var r0 map[string]string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (map[string]string, error)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]string)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// AddressStorageMock_ListAddresses_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListAddresses'
type AddressStorageMock_ListAddresses_Call struct {
	*mock.Call
}

// ListAddresses is a helper method to define mock.On call
//   - ctx context.Context
func (_e *AddressStorageMock_Expecter) ListAddresses(ctx interface{}) *AddressStorageMock_ListAddresses_Call {
	return &AddressStorageMock_ListAddresses_Call{Call: _e.mock.On("ListAddresses", ctx)}
}

func (_c *AddressStorageMock_ListAddresses_Call) Return(_a0 map[string]string, _a1 error) *AddressStorageMock_ListAddresses_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// SaveAddress provides a mock function with given fields: ctx, addr
func (_m *AddressStorageMock) SaveAddress(ctx context.Context, addr WatchedAddress) error {
	ret := _m.Called(ctx, addr)

	if len(ret) == 0 {
		panic("no return value specified for SaveAddress")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, WatchedAddress) error); ok {
		r0 = rf(ctx, addr)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// AddressStorageMock_SaveAddress_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SaveAddress'
type AddressStorageMock_SaveAddress_Call struct {
	*mock.Call
}

// SaveAddress is a helper method to define mock.On call
//   - ctx context.Context
//   - addr WatchedAddress
func (_e *AddressStorageMock_Expecter) SaveAddress(ctx interface{}, addr interface{}) *AddressStorageMock_SaveAddress_Call {
	return &AddressStorageMock_SaveAddress_Call{Call: _e.mock.On("SaveAddress", ctx, addr)}
}

func (_c *AddressStorageMock_SaveAddress_Call) Return(_a0 error) *AddressStorageMock_SaveAddress_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewAddressStorageMock creates a new instance of AddressStorageMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAddressStorageMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AddressStorageMock {
	m := &AddressStorageMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
