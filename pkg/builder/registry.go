package builder

import (
	"fmt"
	"sort"

	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"go.uber.org/zap"
)

// Property 合成类上的只读类属性
type Property struct {
	Name  string
	Value any
}

// DefaultBuilder 单个组件的混入注册表
//
// 注册表在变更阶段通过 AddImport/AddEvent/Merge/SetOmit 配置，然后由
// BuildClass 或 Build 使用一次。注册表不能跨组件复用，也不能并发修改。
type DefaultBuilder struct {
	component uno.Component
	inspector *Inspector

	imports *ordered[string, ImportArg]
	events  *ordered[EventKey, EventArg]
	omit    map[string]struct{}
	props   *ordered[string, any]

	optList  []Option
	opts     *options
	consumed bool
}

// NewDefaultBuilder 创建组件的注册表
func NewDefaultBuilder(component uno.Component, opts ...Option) *DefaultBuilder {
	return &DefaultBuilder{
		component: component,
		inspector: NewInspector(component),
		imports:   newOrdered[string, ImportArg](),
		events:    newOrdered[EventKey, EventArg](),
		omit:      make(map[string]struct{}),
		props:     newOrdered[string, any](),
		optList:   append([]Option(nil), opts...),
		opts:      newOptions(opts),
	}
}

// GetBuilder 创建组件的注册表
func GetBuilder(component uno.Component, opts ...Option) *DefaultBuilder {
	return NewDefaultBuilder(component, opts...)
}

// Component 返回目标组件
func (b *DefaultBuilder) Component() uno.Component {
	return b.component
}

// Inspector 返回组件能力检查器
func (b *DefaultBuilder) Inspector() *Inspector {
	return b.inspector
}

// Catalog 返回使用的适配器目录
func (b *DefaultBuilder) Catalog() *Catalog {
	return b.opts.catalog
}

// Rules 返回名称推导规则
func (b *DefaultBuilder) Rules() NameRules {
	return b.opts.rules
}

func (b *DefaultBuilder) normalizeImport(arg ImportArg) ImportArg {
	arg = arg.clone()
	arg.Name = b.opts.rules.Normalize(arg.Name)
	return arg
}

// AddImport 追加描述；同名描述原位替换
func (b *DefaultBuilder) AddImport(arg ImportArg) {
	arg = b.normalizeImport(arg)
	b.imports.set(arg.Key(), arg)
}

// InsertImport 将描述放到 index 位置；同名描述会被移动
func (b *DefaultBuilder) InsertImport(index int, arg ImportArg) {
	arg = b.normalizeImport(arg)
	b.imports.insert(index, arg.Key(), arg)
}

// RemoveImport 移除描述
func (b *DefaultBuilder) RemoveImport(name string) bool {
	return b.imports.remove(b.opts.rules.Normalize(name))
}

// AddEvent 追加事件描述；相同身份原位替换
func (b *DefaultBuilder) AddEvent(arg EventArg) {
	arg = arg.clone()
	b.events.set(arg.Key(), arg)
}

// InsertEvent 将事件描述放到 index 位置
func (b *DefaultBuilder) InsertEvent(index int, arg EventArg) {
	arg = arg.clone()
	b.events.insert(index, arg.Key(), arg)
}

// RemoveEvent 移除事件描述
func (b *DefaultBuilder) RemoveEvent(arg EventArg) bool {
	return b.events.remove(arg.Key())
}

// SetOmit 将名称加入忽略集合，UNO 名与适配器名均可
func (b *DefaultBuilder) SetOmit(names ...string) {
	for _, name := range names {
		b.omit[b.opts.rules.Normalize(name)] = struct{}{}
	}
}

// HasOmit 名称是否在忽略集合中
func (b *DefaultBuilder) HasOmit(name string) bool {
	_, ok := b.omit[b.opts.rules.Normalize(name)]
	return ok
}

// Omitted 返回排序后的忽略集合
func (b *DefaultBuilder) Omitted() []string {
	names := make([]string, 0, len(b.omit))
	for name := range b.omit {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AutoAddInterface 按默认参数自动添加接口混入
func (b *DefaultBuilder) AutoAddInterface(capability string) {
	b.AutoAddInterfaceWith(capability, true, CheckInterfaceAny)
}

// AutoAddInterfaceWith 从能力名推导适配器名并添加
func (b *DefaultBuilder) AutoAddInterfaceWith(capability string, optional bool, check CheckKind) {
	b.AddImport(ImportArg{
		Name:         b.opts.rules.AdapterName(capability),
		Capabilities: []string{capability},
		Optional:     optional,
		Init:         InitComponent,
		Check:        check,
	})
}

// AutoInterface 为组件声明的每个接口自动添加混入
func (b *DefaultBuilder) AutoInterface() error {
	names, err := b.inspector.CapabilityNames()
	if err != nil {
		return fmt.Errorf("auto interface: %w", err)
	}
	for _, name := range names {
		if b.HasOmit(name) {
			continue
		}
		b.AutoAddInterface(name)
	}
	b.opts.logger.Debug("auto interface",
		zap.Int("capabilities", len(names)),
		zap.Int("imports", b.imports.len()))
	return nil
}

// MergeOption 合并时的覆盖选项
type MergeOption func(*mergeOptions)

type mergeOptions struct {
	optional *bool
	check    *CheckKind
}

// MergeOptional 统一覆盖合并描述的 Optional
func MergeOptional(optional bool) MergeOption {
	return func(o *mergeOptions) {
		o.optional = &optional
	}
}

// MergeCheck 统一覆盖合并描述的检查方式
func MergeCheck(check CheckKind) MergeOption {
	return func(o *mergeOptions) {
		o.check = &check
	}
}

// Merge 合并另一个注册表的描述、忽略集合和类属性
func (b *DefaultBuilder) Merge(other *DefaultBuilder, opts ...MergeOption) {
	if other == nil {
		return
	}
	mo := &mergeOptions{}
	for _, opt := range opts {
		opt(mo)
	}

	for _, arg := range other.imports.list() {
		if mo.optional != nil {
			arg.Optional = *mo.optional
		}
		if mo.check != nil {
			arg.Check = *mo.check
		}
		b.AddImport(arg)
	}
	for _, arg := range other.events.list() {
		if mo.optional != nil {
			arg.Optional = *mo.optional
		}
		if mo.check != nil {
			arg.Check = *mo.check
		}
		b.AddEvent(arg)
	}
	for name := range other.omit {
		b.omit[name] = struct{}{}
	}
	other.props.each(func(name string, value any) {
		b.props.set(name, value)
	})
}

// MergeModule 合并目录中模块级构建器返回的注册表
func (b *DefaultBuilder) MergeModule(module string, opts ...MergeOption) error {
	fn, ok := b.opts.catalog.Builder(module)
	if !ok {
		return &ResolveError{Name: module, Err: ErrAdapterNotFound}
	}
	b.Merge(fn(b.component, b.optList...), opts...)
	return nil
}

// ImportNames 返回按插入顺序排列的适配器名
func (b *DefaultBuilder) ImportNames() []string {
	return append([]string(nil), b.imports.keys...)
}

// HasImport 是否包含该描述，UNO 名与适配器名均可
func (b *DefaultBuilder) HasImport(name string) bool {
	return b.imports.has(b.opts.rules.Normalize(name))
}

// Import 返回指定描述
func (b *DefaultBuilder) Import(name string) (ImportArg, bool) {
	arg, ok := b.imports.get(b.opts.rules.Normalize(name))
	if !ok {
		return ImportArg{}, false
	}
	return arg.clone(), true
}

// Imports 返回描述快照
func (b *DefaultBuilder) Imports() []ImportArg {
	list := b.imports.list()
	for i := range list {
		list[i] = list[i].clone()
	}
	return list
}

// Events 返回事件描述快照
func (b *DefaultBuilder) Events() []EventArg {
	list := b.events.list()
	for i := range list {
		list[i] = list[i].clone()
	}
	return list
}

// SetProperty 注册合成类的只读类属性
func (b *DefaultBuilder) SetProperty(name string, value any) {
	b.props.set(name, value)
}

// Properties 返回已注册的类属性
func (b *DefaultBuilder) Properties() []Property {
	out := make([]Property, 0, b.props.len())
	b.props.each(func(name string, value any) {
		out = append(out, Property{Name: name, Value: value})
	})
	return out
}
