package builder

import (
	"github.com/google/uuid"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// Part 组合实例中的一个构造完成的适配器
type Part struct {
	Name  string
	Value any
}

// Composite 组合类的实例
//
// 每个混入是一个独立的值，按方法解析顺序排列。As 按该顺序查找第一个
// 满足接口的部件，排在前面的混入会遮蔽后面的同名方法。
type Composite struct {
	id        string
	class     *Class
	component uno.Component
	base      any

	parts  []Part
	byName map[string]any
	byCap  map[string]string
}

func newComposite(class *Class, component uno.Component, base any) *Composite {
	c := &Composite{
		id:        uuid.NewString(),
		class:     class,
		component: component,
		base:      base,
		byName:    make(map[string]any),
		byCap:     make(map[string]string),
	}
	c.byName[class.base.Name] = base
	return c
}

func (c *Composite) add(m *mixin, value any) {
	c.byName[m.name] = value
	for _, capability := range m.capabilities {
		if _, exists := c.byCap[capability]; !exists {
			c.byCap[capability] = m.name
		}
	}
}

// order 按方法解析顺序排列已构造的部件
func (c *Composite) order() {
	c.parts = c.parts[:0]
	for _, name := range c.class.mro {
		if v, ok := c.byName[name]; ok {
			c.parts = append(c.parts, Part{Name: name, Value: v})
		}
	}
}

// ID 返回实例标识
func (c *Composite) ID() string {
	return c.id
}

// Class 返回实例所属的类
func (c *Composite) Class() *Class {
	return c.class
}

// Component 返回被包装的组件
func (c *Composite) Component() uno.Component {
	return c.component
}

// Base 返回基类实例
func (c *Composite) Base() any {
	return c.base
}

// Part 按适配器名返回部件，UNO 名会按类的推导规则转换
//
// 被后代混入吸收的祖先适配器返回后代的部件。
func (c *Composite) Part(name string) (any, bool) {
	name = c.class.opts.rules.Normalize(name)
	if v, ok := c.byName[name]; ok {
		return v, true
	}
	if d, ok := c.class.inherited[name]; ok {
		v, ok := c.byName[d]
		return v, ok
	}
	return nil, false
}

// Has 是否包含该适配器
func (c *Composite) Has(name string) bool {
	_, ok := c.Part(name)
	return ok
}

// Parts 返回按方法解析顺序排列的部件
func (c *Composite) Parts() []Part {
	return append([]Part(nil), c.parts...)
}

// ByCapability 按能力名返回提供该能力的部件
func (c *Composite) ByCapability(capability string) (any, bool) {
	name, ok := c.byCap[capability]
	if !ok {
		return nil, false
	}
	v, ok := c.byName[name]
	return v, ok
}

// Supports 实例是否包含提供该能力的部件
func (c *Composite) Supports(capability string) bool {
	_, ok := c.ByCapability(capability)
	return ok
}

// Property 返回类属性
func (c *Composite) Property(name string) (any, bool) {
	return c.class.Property(name)
}

// As 按方法解析顺序返回第一个可以转换为 T 的部件
func As[T any](c *Composite) (T, bool) {
	for _, p := range c.parts {
		if v, ok := p.Value.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
