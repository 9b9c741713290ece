package uno

import (
	"fmt"
	"sort"
	"sync"
)

// ServiceFactory 创建服务实例的工厂函数
type ServiceFactory func() (Component, error)

// StaticLoader 基于注册表的 Loader 实现
type StaticLoader struct {
	mu        sync.RWMutex
	factories map[string]ServiceFactory
}

// NewStaticLoader 创建新的加载器
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{
		factories: make(map[string]ServiceFactory),
	}
}

// Register 注册服务工厂
func (l *StaticLoader) Register(serviceName string, factory ServiceFactory) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.factories[serviceName]; exists {
		return fmt.Errorf("service %s already registered", serviceName)
	}
	l.factories[serviceName] = factory
	return nil
}

// CreateInstance 实现 Loader
func (l *StaticLoader) CreateInstance(serviceName string) (Component, error) {
	l.mu.RLock()
	factory, exists := l.factories[serviceName]
	l.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("service %s not found", serviceName)
	}
	return factory()
}

// AvailableServiceNames 实现 MultiServiceFactory，返回排序后的服务名
func (l *StaticLoader) AvailableServiceNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
