package mocks

import (
	context "context"

	txstream "github.com/gabapcia/geyserwatch/internal/txstream"
	mock "github.com/stretchr/testify/mock"
)

// Service is a mock type for the txstream.Service type
type Service struct {
	mock.Mock
}

type Service_Expecter struct {
	mock *mock.Mock
}

func (_m *Service) EXPECT() *Service_Expecter {
	return &Service_Expecter{mock: &_m.Mock}
}

// Run provides a mock function with given fields: ctx
func (_m *Service) Run(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}
	return ret.Error(0)
}

type Service_Run_Call struct {
	*mock.Call
}

// Run is a helper method to define mock.On call
//   - ctx context.Context
func (_e *Service_Expecter) Run(ctx interface{}) *Service_Run_Call {
	return &Service_Run_Call{Call: _e.mock.On("Run", ctx)}
}

func (_c *Service_Run_Call) Return(_a0 error) *Service_Run_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *Service_Run_Call) RunAndReturn(run func(context.Context) error) *Service_Run_Call {
	_c.Call.Return(run)
	return _c
}

// State provides a mock function with no fields
func (_m *Service) State() txstream.State {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for State")
	}

	return ret.Get(0).(txstream.State)
}

type Service_State_Call struct {
	*mock.Call
}

// State is a helper method to define mock.On call
func (_e *Service_Expecter) State() *Service_State_Call {
	return &Service_State_Call{Call: _e.mock.On("State")}
}

func (_c *Service_State_Call) Return(_a0 txstream.State) *Service_State_Call {
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
