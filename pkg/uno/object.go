package uno

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrNoSuchElement 元素不存在
	ErrNoSuchElement = errors.New("no such element")

	// ErrIndexOutOfBounds 索引越界
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrUnknownProperty 未知属性
	ErrUnknownProperty = errors.New("unknown property")

	// ErrDisposed 组件已释放
	ErrDisposed = errors.New("component disposed")

	// ErrNoFactory 组件没有配置实例工厂
	ErrNoFactory = errors.New("no instance factory")
)

// Object 进程内组件实现
//
// Object 在 Go 层面实现了本包的全部能力接口，但对外声明的能力只由
// Types 和 SupportedServiceNames 决定，构建器据此判断应组合哪些适配器。
type Object struct {
	mu sync.RWMutex

	implName   string
	interfaces []string
	services   []string

	props     map[string]any
	names     []string
	elements  map[string]any
	items     []any
	listeners []EventListener
	disposed  bool
	factory   ServiceFactory
}

// ObjectOption Object 配置选项
type ObjectOption func(*Object)

// WithInterfaces 声明组件实现的接口
func WithInterfaces(names ...string) ObjectOption {
	return func(o *Object) {
		o.interfaces = append(o.interfaces, names...)
	}
}

// WithServices 声明组件支持的服务
func WithServices(names ...string) ObjectOption {
	return func(o *Object) {
		o.services = append(o.services, names...)
	}
}

// WithProperty 设置初始属性
func WithProperty(name string, value any) ObjectOption {
	return func(o *Object) {
		o.props[name] = value
	}
}

// WithElement 添加命名元素
func WithElement(name string, value any) ObjectOption {
	return func(o *Object) {
		if _, exists := o.elements[name]; !exists {
			o.names = append(o.names, name)
		}
		o.elements[name] = value
	}
}

// WithItems 添加索引元素
func WithItems(items ...any) ObjectOption {
	return func(o *Object) {
		o.items = append(o.items, items...)
	}
}

// WithFactory 设置 NewInstance 使用的工厂
func WithFactory(factory ServiceFactory) ObjectOption {
	return func(o *Object) {
		o.factory = factory
	}
}

// NewObject 创建进程内组件
func NewObject(implName string, opts ...ObjectOption) *Object {
	o := &Object{
		implName: implName,
		props:    make(map[string]any),
		elements: make(map[string]any),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Types 实现 TypeProvider
func (o *Object) Types() []Type {
	types := make([]Type, 0, len(o.interfaces))
	for _, name := range o.interfaces {
		types = append(types, Type{Name: name})
	}
	return types
}

// ImplementationName 实现 ServiceInfo
func (o *Object) ImplementationName() string {
	return o.implName
}

// SupportedServiceNames 实现 ServiceInfo
func (o *Object) SupportedServiceNames() []string {
	out := make([]string, len(o.services))
	copy(out, o.services)
	return out
}

// SupportsService 实现 ServiceInfo
func (o *Object) SupportsService(name string) bool {
	for _, s := range o.services {
		if s == name {
			return true
		}
	}
	return false
}

// HasElements 实现 ElementAccess
func (o *Object) HasElements() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.names) > 0 || len(o.items) > 0
}

// ByName 实现 NameAccess
func (o *Object) ByName(name string) (any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.elements[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, name)
	}
	return v, nil
}

// ElementNames 实现 NameAccess
func (o *Object) ElementNames() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// HasByName 实现 NameAccess
func (o *Object) HasByName(name string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.elements[name]
	return ok
}

// Count 实现 IndexAccess
func (o *Object) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.items)
}

// ByIndex 实现 IndexAccess
func (o *Object) ByIndex(index int) (any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if index < 0 || index >= len(o.items) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfBounds, index)
	}
	return o.items[index], nil
}

// PropertyValue 实现 PropertySet
func (o *Object) PropertyValue(name string) (any, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return v, nil
}

// SetPropertyValue 实现 PropertySet
func (o *Object) SetPropertyValue(name string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.disposed {
		return ErrDisposed
	}
	if _, ok := o.props[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	o.props[name] = value
	return nil
}

// PropertyNames 返回排序后的属性名
func (o *Object) PropertyNames() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	names := make([]string, 0, len(o.props))
	for name := range o.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddEventListener 实现 Disposable
func (o *Object) AddEventListener(listener EventListener) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, listener)
}

// sameListener 按身份比较监听器；不可比较的值类型监听器永远不相等
func sameListener(a, b EventListener) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

// RemoveEventListener 实现 Disposable
//
// 监听器按身份匹配，应使用指针类型；不可比较的值类型无法被移除。
func (o *Object) RemoveEventListener(listener EventListener) {
	o.mu.Lock()
	defer o.mu.Unlock()

	filtered := o.listeners[:0]
	for _, l := range o.listeners {
		if !sameListener(l, listener) {
			filtered = append(filtered, l)
		}
	}
	o.listeners = filtered
}

// ListenerCount 返回已注册的监听器数量
func (o *Object) ListenerCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.listeners)
}

// Dispose 实现 Disposable，通知全部监听器后清空
func (o *Object) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	listeners := o.listeners
	o.listeners = nil
	o.mu.Unlock()

	for _, l := range listeners {
		l.Disposing(EventObject{Source: o})
	}
}

// IsDisposed 组件是否已释放
func (o *Object) IsDisposed() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.disposed
}

// NewInstance 实现 SingleServiceFactory
func (o *Object) NewInstance() (Component, error) {
	o.mu.RLock()
	factory, disposed := o.factory, o.disposed
	o.mu.RUnlock()

	if disposed {
		return nil, ErrDisposed
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFactory, o.implName)
	}
	return factory()
}
