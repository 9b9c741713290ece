// Package beans 提供属性集混入
package beans

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// Module 本包对应的适配器模块
const Module = "ooodev.adapter.beans"

// PropertySetName 属性集适配器名
const PropertySetName = Module + ".property_set_partial.PropertySetPartial"

// PropertySetPartial XPropertySet 混入
type PropertySetPartial struct {
	props uno.PropertySet
}

// NewPropertySetPartial 创建混入；iface 为空时跳过接口校验
func NewPropertySetPartial(component uno.Component, iface string) (*PropertySetPartial, error) {
	props, err := adapter.Cast[uno.PropertySet](PropertySetName, component, iface)
	if err != nil {
		return nil, err
	}
	return &PropertySetPartial{props: props}, nil
}

// GetPropertyValue 读取属性
func (p *PropertySetPartial) GetPropertyValue(name string) (any, error) {
	return p.props.PropertyValue(name)
}

// SetPropertyValue 写入属性
func (p *PropertySetPartial) SetPropertyValue(name string, value any) error {
	return p.props.SetPropertyValue(name, value)
}

// GetPropertyValues 按顺序读取多个属性，遇到第一个错误即返回
func (p *PropertySetPartial) GetPropertyValues(names ...string) ([]any, error) {
	values := make([]any, 0, len(names))
	for _, name := range names {
		v, err := p.props.PropertyValue(name)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Register 把本包的适配器注册到目录
func Register(c *builder.Catalog) error {
	return c.Register(builder.Adapter{
		Name:        PropertySetName,
		Description: "property access (XPropertySet)",
		New: func(args builder.InitArgs) (any, error) {
			return NewPropertySetPartial(args.Component, adapter.Interface(args, uno.XPropertySet))
		},
	})
}
