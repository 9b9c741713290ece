package builder

import (
	"errors"
	"fmt"

	"github.com/nerdneilsfield/go-ooodev/pkg/events"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"go.uber.org/zap"
)

// Class 合成后的组合类
type Class struct {
	name        string
	synthesized bool
	base        Adapter
	mixins      []*mixin
	bases       []string
	mro         []string
	props       []Property
	skipped     []Skipped
	omitted     []string
	inherited   map[string]string
	opts        *options
}

// Name 返回类名
func (c *Class) Name() string {
	return c.name
}

// Synthesized 是否真的合成了新类；为 false 时即为基类本身
func (c *Class) Synthesized() bool {
	return c.synthesized
}

// BaseName 返回基类适配器名
func (c *Class) BaseName() string {
	return c.base.Name
}

// Bases 返回基类列表：基类、partial 混入、接口混入、事件混入
func (c *Class) Bases() []string {
	if !c.synthesized {
		return []string{c.base.Name}
	}
	return append([]string(nil), c.bases...)
}

// MRO 返回方法解析顺序
func (c *Class) MRO() []string {
	return append([]string(nil), c.mro...)
}

// Property 返回类属性
func (c *Class) Property(name string) (any, bool) {
	for _, p := range c.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Properties 返回全部类属性
func (c *Class) Properties() []Property {
	return append([]Property(nil), c.props...)
}

func (c *Class) setProperty(name string, value any) {
	for i, p := range c.props {
		if p.Name == name {
			c.props[i].Value = value
			return
		}
	}
	c.props = append(c.props, Property{Name: name, Value: value})
}

// New 用组件构造基类，然后初始化每个混入
func (c *Class) New(component uno.Component) (*Composite, error) {
	base, err := c.base.New(InitArgs{Kind: InitComponent, Component: component})
	if err != nil {
		return nil, &InitError{Class: c.name, Adapter: c.base.Name, Kind: InitComponent, Err: err}
	}
	return c.Instantiate(component, base)
}

// Instantiate 使用外部构造的基类实例初始化每个混入
func (c *Class) Instantiate(component uno.Component, base any) (*Composite, error) {
	inst := newComposite(c, component, base)

	for _, m := range c.mixins {
		value, err := c.initMixin(inst, m)
		if errors.Is(err, ErrInitCancelled) {
			c.opts.logger.Debug("mixin skipped",
				zap.String("class", c.name),
				zap.String("adapter", m.name),
				zap.Error(err))
			continue
		}
		if err != nil {
			return nil, &InitError{Class: c.name, Adapter: m.name, Kind: m.init, Err: err}
		}
		if value == nil {
			continue
		}
		inst.add(m, value)
	}
	inst.order()

	return inst, nil
}

// initMixin 按构造约定创建混入；被钩子取消时返回 ErrInitCancelled
func (c *Class) initMixin(inst *Composite, m *mixin) (any, error) {
	args := InitArgs{Kind: m.init, Instance: inst}

	switch m.init {
	case InitNone:
	case InitComponent:
		args.Component = inst.component
	case InitComponentHandle:
		args.Component = inst.component
		args.Handle = nil
	case InitLoader:
		if c.opts.loader == nil {
			return nil, ErrNoLoader
		}
		args.Loader = c.opts.loader
	case InitCallback:
		ctx := &ClassInitContext{
			Class:    c,
			Adapter:  m.name,
			Kind:     m.init,
			Instance: inst,
			Kwargs:   make(map[string]any),
		}
		c.opts.hooks.fireInit(ctx)
		if ctx.Cancel {
			return nil, ErrInitCancelled
		}
		if m.group == GroupEvent {
			return c.initEvents(inst, m)
		}
		args.Component = inst.component
		args.Args = ctx.Args
		args.Kwargs = ctx.Kwargs
		args.Handle = callbackHandle(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, m.init)
	}

	if m.adapter.New == nil {
		return nil, fmt.Errorf("%w: %s has no factory", ErrAdapterNotFound, m.name)
	}
	return m.adapter.New(args)
}

// callbackHandle 取钩子提供的能力句柄：优先第一个位置参数，其次 interface 关键字参数
func callbackHandle(ctx *ClassInitContext) any {
	if len(ctx.Args) > 0 {
		return ctx.Args[0]
	}
	return ctx.Kwargs["interface"]
}

func (c *Class) initEvents(inst *Composite, m *mixin) (any, error) {
	ctx := &ClassEventInitContext{
		Class:    c,
		Adapter:  m.name,
		Instance: inst,
		Trigger: events.TriggerArgs{
			Source:    inst,
			Component: inst.component,
		},
		Callback: m.callback,
	}
	c.opts.hooks.fireEventInit(ctx)
	if ctx.Cancel {
		return nil, fmt.Errorf("event %w", ErrInitCancelled)
	}
	return m.adapter.NewEvents(ctx.Trigger, ctx.Callback)
}

// MixinInfo 混入摘要
type MixinInfo struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Group        string   `json:"group" yaml:"group" toml:"group"`
	Init         string   `json:"init" yaml:"init" toml:"init"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
}

// ClassInfo 组合类摘要
type ClassInfo struct {
	Name        string         `json:"name" yaml:"name" toml:"name"`
	Synthesized bool           `json:"synthesized" yaml:"synthesized" toml:"synthesized"`
	Base        string         `json:"base" yaml:"base" toml:"base"`
	Bases       []string       `json:"bases" yaml:"bases" toml:"bases"`
	MRO         []string       `json:"mro" yaml:"mro" toml:"mro"`
	Mixins      []MixinInfo    `json:"mixins" yaml:"mixins" toml:"mixins"`
	Skipped     []Skipped      `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
	Omitted     []string       `json:"omitted,omitempty" yaml:"omitted,omitempty" toml:"omitted,omitempty"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// Describe 返回类摘要
func (c *Class) Describe() ClassInfo {
	info := ClassInfo{
		Name:        c.name,
		Synthesized: c.synthesized,
		Base:        c.base.Name,
		Bases:       c.Bases(),
		MRO:         c.MRO(),
		Skipped:     append([]Skipped(nil), c.skipped...),
		Omitted:     append([]string(nil), c.omitted...),
	}
	for _, m := range c.mixins {
		info.Mixins = append(info.Mixins, MixinInfo{
			Name:         m.name,
			Group:        m.group.String(),
			Init:         m.init.String(),
			Capabilities: append([]string(nil), m.capabilities...),
		})
	}
	if len(c.props) > 0 {
		info.Properties = make(map[string]any, len(c.props))
		for _, p := range c.props {
			info.Properties[p.Name] = p.Value
		}
	}
	return info
}
