package builder

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nerdneilsfield/go-ooodev/pkg/events"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// ComponentBaseName 默认基类适配器名
const ComponentBaseName = "ooodev.adapter.component_base.ComponentBase"

const maxSuggestions = 3

// InitArgs 混入工厂收到的构造参数
type InitArgs struct {
	Kind      InitKind
	Component uno.Component
	// Handle 能力句柄，nil 表示已验证，跳过校验；InitCallback 约定下由钩子参数提供
	Handle   any
	Loader   uno.Loader
	Args     []any
	Kwargs   map[string]any
	Instance *Composite
}

// Factory 普通混入工厂
type Factory func(args InitArgs) (any, error)

// EventFactory 事件混入工厂
type EventFactory func(trigger events.TriggerArgs, cb events.LazyCallback) (any, error)

// BuilderFunc 模块级构建器函数，返回预先填充的注册表
type BuilderFunc func(component uno.Component, opts ...Option) *DefaultBuilder

// Adapter 目录中的一个适配器
type Adapter struct {
	// Name 适配器名（模块路径加类名）
	Name string
	// Parents 父适配器名，用于计算方法解析顺序
	Parents     []string
	Description string

	New       Factory
	NewEvents EventFactory
}

// IsEvents 是否为事件混入
func (a Adapter) IsEvents() bool {
	return a.NewEvents != nil
}

// Catalog 适配器目录，相当于按点号路径导入混入类
type Catalog struct {
	mu        sync.RWMutex
	adapters  map[string]Adapter
	callbacks map[string]events.LazyCallback
	builders  map[string]BuilderFunc
}

// NewCatalog 创建目录，已包含默认基类
func NewCatalog() *Catalog {
	c := &Catalog{
		adapters:  make(map[string]Adapter),
		callbacks: make(map[string]events.LazyCallback),
		builders:  make(map[string]BuilderFunc),
	}
	c.adapters[ComponentBaseName] = Adapter{
		Name:        ComponentBaseName,
		Description: "holds the wrapped component",
		New: func(args InitArgs) (any, error) {
			return NewComponentBase(args.Component), nil
		},
	}
	return c
}

// DefaultCatalog 默认目录
var DefaultCatalog = NewCatalog()

// Register 注册适配器到默认目录
func Register(a Adapter) error {
	return DefaultCatalog.Register(a)
}

// RegisterCallback 注册延迟回调到默认目录
func RegisterCallback(module, name string, cb events.LazyCallback) error {
	return DefaultCatalog.RegisterCallback(module, name, cb)
}

// RegisterBuilder 注册模块级构建器到默认目录
func RegisterBuilder(module string, fn BuilderFunc) error {
	return DefaultCatalog.RegisterBuilder(module, fn)
}

// Register 注册适配器
func (c *Catalog) Register(a Adapter) error {
	if a.Name == "" {
		return fmt.Errorf("adapter name must be specified")
	}
	if a.New == nil && a.NewEvents == nil {
		return fmt.Errorf("adapter %s has no factory", a.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.adapters[a.Name]; exists {
		return fmt.Errorf("adapter %s already registered", a.Name)
	}
	a.Parents = append([]string(nil), a.Parents...)
	c.adapters[a.Name] = a
	return nil
}

// MustRegister 注册适配器，失败时 panic
func (c *Catalog) MustRegister(a Adapter) {
	if err := c.Register(a); err != nil {
		panic(err)
	}
}

// RegisterCallback 注册模块级延迟回调
func (c *Catalog) RegisterCallback(module, name string, cb events.LazyCallback) error {
	if cb == nil {
		return fmt.Errorf("callback %s is nil", name)
	}
	key := joinName(module, name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.callbacks[key]; exists {
		return fmt.Errorf("callback %s already registered", key)
	}
	c.callbacks[key] = cb
	return nil
}

// RegisterBuilder 注册模块级构建器函数
func (c *Catalog) RegisterBuilder(module string, fn BuilderFunc) error {
	if fn == nil {
		return fmt.Errorf("builder for %s is nil", module)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.builders[module]; exists {
		return fmt.Errorf("builder for %s already registered", module)
	}
	c.builders[module] = fn
	return nil
}

// Resolve 按名称查找适配器
func (c *Catalog) Resolve(name string) (Adapter, error) {
	c.mu.RLock()
	a, exists := c.adapters[name]
	c.mu.RUnlock()

	if !exists {
		return Adapter{}, &ResolveError{
			Name:        name,
			Suggestions: c.suggest(name),
			Err:         ErrAdapterNotFound,
		}
	}
	return a, nil
}

// Callback 查找延迟回调
func (c *Catalog) Callback(name string) (events.LazyCallback, error) {
	c.mu.RLock()
	cb, exists := c.callbacks[name]
	c.mu.RUnlock()

	if !exists {
		return nil, &ResolveError{Name: name, Err: ErrCallbackNotFound}
	}
	return cb, nil
}

// Builder 查找模块级构建器
func (c *Catalog) Builder(module string) (BuilderFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, exists := c.builders[module]
	return fn, exists
}

// Has 目录中是否存在该适配器
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.adapters[name]
	return exists
}

// Names 返回排序后的适配器名
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.adapters))
	for name := range c.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List 返回按名称排序的适配器
func (c *Catalog) List() []Adapter {
	names := c.Names()

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Adapter, 0, len(names))
	for _, name := range names {
		out = append(out, c.adapters[name])
	}
	return out
}

func (c *Catalog) parents(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapters[name].Parents
}

// suggest 返回与 name 最接近的已注册名称
func (c *Catalog) suggest(name string) []string {
	_, class := SplitAdapterName(name)
	ranks := fuzzy.RankFindFold(class, c.Names())
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// ComponentBase 默认基类，只持有组件
type ComponentBase struct {
	component uno.Component
}

// NewComponentBase 创建默认基类实例
func NewComponentBase(component uno.Component) *ComponentBase {
	return &ComponentBase{component: component}
}

// Component 返回被包装的组件
func (b *ComponentBase) Component() uno.Component {
	return b.component
}
