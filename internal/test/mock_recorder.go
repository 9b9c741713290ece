package test

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"github.com/stretchr/testify/mock"
)

// MockRecorder 是一个模拟的构建记录器
type MockRecorder struct {
	mock.Mock
}

// RecordBuild 实现 builder.Recorder
func (m *MockRecorder) RecordBuild(report builder.BuildReport) {
	m.Called(report)
}

// MockLoader 是一个模拟的会话加载器
type MockLoader struct {
	mock.Mock
}

// CreateInstance 实现 uno.Loader
func (m *MockLoader) CreateInstance(serviceName string) (uno.Component, error) {
	args := m.Called(serviceName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(uno.Component), args.Error(1)
}

// MockListener 是一个模拟的事件监听器
type MockListener struct {
	mock.Mock
}

// Disposing 实现 uno.EventListener
func (m *MockListener) Disposing(event uno.EventObject) {
	m.Called(event)
}
