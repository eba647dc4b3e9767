package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// Service is a mock type for the addressregistry.Service type
type Service struct {
	mock.Mock
}

type Service_Expecter struct {
	mock *mock.Mock
}

func (_m *Service) EXPECT() *Service_Expecter {
	return &Service_Expecter{mock: &_m.Mock}
}

// List provides a mock function with given fields: ctx
func (_m *Service) List(ctx context.Context) (map[string]string, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 map[string]string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]string)
	}

	return r0, ret.Error(1)
}

type Service_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
//   - ctx context.Context
func (_e *Service_Expecter) List(ctx interface{}) *Service_List_Call {
	return &Service_List_Call{Call: _e.mock.On("List", ctx)}
}

func (_c *Service_List_Call) Return(_a0 map[string]string, _a1 error) *Service_List_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Register provides a mock function with given fields: ctx, label, address
func (_m *Service) Register(ctx context.Context, label string, address string) error {
	ret := _m.Called(ctx, label, address)

	if len(ret) == 0 {
		panic("no return value specified for Register")
	}

	return ret.Error(0)
}

type Service_Register_Call struct {
	*mock.Call
}

// Register is a helper method to define mock.On call
//   - ctx context.Context
//   - label string
//   - address string
func (_e *Service_Expecter) Register(ctx interface{}, label interface{}, address interface{}) *Service_Register_Call {
	return &Service_Register_Call{Call: _e.mock.On("Register", ctx, label, address)}
}

func (_c *Service_Register_Call) Return(_a0 error) *Service_Register_Call {
	_c.Call.Return(_a0)
	return _c
}

// Unregister provides a mock function with given fields: ctx, label
func (_m *Service) Unregister(ctx context.Context, label string) error {
	ret := _m.Called(ctx, label)

	if len(ret) == 0 {
		panic("no return value specified for Unregister")
	}

	return ret.Error(0)
}

type Service_Unregister_Call struct {
	*mock.Call
}

// Unregister is a helper method to define mock.On call
//   - ctx context.Context
//   - label string
func (_e *Service_Expecter) Unregister(ctx interface{}, label interface{}) *Service_Unregister_Call {
	return &Service_Unregister_Call{Call: _e.mock.On("Unregister", ctx, label)}
}

func (_c *Service_Unregister_Call) Return(_a0 error) *Service_Unregister_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
