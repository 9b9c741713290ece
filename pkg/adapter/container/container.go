// Package container 提供容器访问接口的混入
package container

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// Module 本包对应的适配器模块
const Module = "ooodev.adapter.container"

// 适配器名
const (
	ElementAccessName = Module + ".element_access_partial.ElementAccessPartial"
	NameAccessName    = Module + ".name_access_partial.NameAccessPartial"
	IndexAccessName   = Module + ".index_access_partial.IndexAccessPartial"
)

// ElementAccessPartial XElementAccess 混入
type ElementAccessPartial struct {
	access uno.ElementAccess
}

// NewElementAccessPartial 创建混入；iface 为空时跳过接口校验
func NewElementAccessPartial(component uno.Component, iface string) (*ElementAccessPartial, error) {
	access, err := adapter.Cast[uno.ElementAccess](ElementAccessName, component, iface)
	if err != nil {
		return nil, err
	}
	return &ElementAccessPartial{access: access}, nil
}

// HasElements 容器是否包含元素
func (p *ElementAccessPartial) HasElements() bool {
	return p.access.HasElements()
}

// NameAccessPartial XNameAccess 混入
type NameAccessPartial struct {
	*ElementAccessPartial
	access uno.NameAccess
}

// NewNameAccessPartial 创建混入；iface 为空时跳过接口校验
func NewNameAccessPartial(component uno.Component, iface string) (*NameAccessPartial, error) {
	access, err := adapter.Cast[uno.NameAccess](NameAccessName, component, iface)
	if err != nil {
		return nil, err
	}
	return &NameAccessPartial{
		ElementAccessPartial: &ElementAccessPartial{access: access},
		access:               access,
	}, nil
}

// GetByName 按名称获取元素
func (p *NameAccessPartial) GetByName(name string) (any, error) {
	return p.access.ByName(name)
}

// GetElementNames 返回全部元素名
func (p *NameAccessPartial) GetElementNames() []string {
	return p.access.ElementNames()
}

// HasByName 是否存在该名称的元素
func (p *NameAccessPartial) HasByName(name string) bool {
	return p.access.HasByName(name)
}

// IndexAccessPartial XIndexAccess 混入
type IndexAccessPartial struct {
	*ElementAccessPartial
	access uno.IndexAccess
}

// NewIndexAccessPartial 创建混入；iface 为空时跳过接口校验
func NewIndexAccessPartial(component uno.Component, iface string) (*IndexAccessPartial, error) {
	access, err := adapter.Cast[uno.IndexAccess](IndexAccessName, component, iface)
	if err != nil {
		return nil, err
	}
	return &IndexAccessPartial{
		ElementAccessPartial: &ElementAccessPartial{access: access},
		access:               access,
	}, nil
}

// GetCount 返回元素数量
func (p *IndexAccessPartial) GetCount() int {
	return p.access.Count()
}

// GetByIndex 按索引获取元素
func (p *IndexAccessPartial) GetByIndex(index int) (any, error) {
	return p.access.ByIndex(index)
}

// Register 把本包的适配器和模块构建器注册到目录
func Register(c *builder.Catalog) error {
	adapters := []builder.Adapter{
		{
			Name:        ElementAccessName,
			Description: "element access (XElementAccess)",
			New: func(args builder.InitArgs) (any, error) {
				return NewElementAccessPartial(args.Component, adapter.Interface(args, uno.XElementAccess))
			},
		},
		{
			Name:        NameAccessName,
			Parents:     []string{ElementAccessName},
			Description: "access by name (XNameAccess)",
			New: func(args builder.InitArgs) (any, error) {
				return NewNameAccessPartial(args.Component, adapter.Interface(args, uno.XNameAccess))
			},
		},
		{
			Name:        IndexAccessName,
			Parents:     []string{ElementAccessName},
			Description: "access by index (XIndexAccess)",
			New: func(args builder.InitArgs) (any, error) {
				return NewIndexAccessPartial(args.Component, adapter.Interface(args, uno.XIndexAccess))
			},
		},
	}
	for _, a := range adapters {
		if err := c.Register(a); err != nil {
			return err
		}
	}
	return c.RegisterBuilder(Module, GetBuilder)
}

// GetBuilder 返回包含容器混入的注册表
func GetBuilder(component uno.Component, opts ...builder.Option) *builder.DefaultBuilder {
	b := builder.GetBuilder(component, opts...)
	b.AutoAddInterface(uno.XNameAccess)
	b.AutoAddInterface(uno.XIndexAccess)
	b.AutoAddInterface(uno.XElementAccess)
	return b
}
