// Package lang 提供 com.sun.star.lang 接口的混入
package lang

import (
	"fmt"

	"github.com/nerdneilsfield/go-ooodev/pkg/adapter"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// Module 本包对应的适配器模块
const Module = "ooodev.adapter.lang"

// 适配器名
const (
	TypeProviderName         = Module + ".type_provider_partial.TypeProviderPartial"
	ServiceInfoName          = Module + ".service_info_partial.ServiceInfoPartial"
	ComponentName            = Module + ".component_partial.ComponentPartial"
	SingleServiceFactoryName = Module + ".single_service_factory_partial.SingleServiceFactoryPartial"
	MultiServiceFactoryName  = Module + ".multi_service_factory_partial.MultiServiceFactoryPartial"
)

// TypeProviderPartial XTypeProvider 混入
type TypeProviderPartial struct {
	provider uno.TypeProvider
}

// NewTypeProviderPartial 创建混入；iface 为空时跳过接口校验
func NewTypeProviderPartial(component uno.Component, iface string) (*TypeProviderPartial, error) {
	tp, err := adapter.Cast[uno.TypeProvider](TypeProviderName, component, iface)
	if err != nil {
		return nil, err
	}
	return &TypeProviderPartial{provider: tp}, nil
}

// GetTypes 返回组件声明的接口类型
func (p *TypeProviderPartial) GetTypes() []uno.Type {
	return p.provider.Types()
}

// ServiceInfoPartial XServiceInfo 混入
type ServiceInfoPartial struct {
	info uno.ServiceInfo
}

// NewServiceInfoPartial 创建混入；iface 为空时跳过接口校验
func NewServiceInfoPartial(component uno.Component, iface string) (*ServiceInfoPartial, error) {
	info, err := adapter.Cast[uno.ServiceInfo](ServiceInfoName, component, iface)
	if err != nil {
		return nil, err
	}
	return &ServiceInfoPartial{info: info}, nil
}

// GetImplementationName 返回实现名
func (p *ServiceInfoPartial) GetImplementationName() string {
	return p.info.ImplementationName()
}

// GetSupportedServiceNames 返回支持的服务名
func (p *ServiceInfoPartial) GetSupportedServiceNames() []string {
	return p.info.SupportedServiceNames()
}

// SupportsService 是否支持该服务
func (p *ServiceInfoPartial) SupportsService(name string) bool {
	return p.info.SupportsService(name)
}

// ComponentPartial XComponent 混入
type ComponentPartial struct {
	component uno.Disposable
}

// NewComponentPartial 创建混入；iface 为空时跳过接口校验
func NewComponentPartial(component uno.Component, iface string) (*ComponentPartial, error) {
	d, err := adapter.Cast[uno.Disposable](ComponentName, component, iface)
	if err != nil {
		return nil, err
	}
	return &ComponentPartial{component: d}, nil
}

// Dispose 释放组件
func (p *ComponentPartial) Dispose() {
	p.component.Dispose()
}

// AddEventListener 注册释放监听器
func (p *ComponentPartial) AddEventListener(listener uno.EventListener) {
	p.component.AddEventListener(listener)
}

// RemoveEventListener 移除释放监听器
func (p *ComponentPartial) RemoveEventListener(listener uno.EventListener) {
	p.component.RemoveEventListener(listener)
}

// SingleServiceFactoryPartial XSingleServiceFactory 混入
type SingleServiceFactoryPartial struct {
	factory uno.SingleServiceFactory
}

// NewSingleServiceFactoryPartial 创建混入；iface 为空时跳过接口校验
func NewSingleServiceFactoryPartial(component uno.Component, iface string) (*SingleServiceFactoryPartial, error) {
	f, err := adapter.Cast[uno.SingleServiceFactory](SingleServiceFactoryName, component, iface)
	if err != nil {
		return nil, err
	}
	return &SingleServiceFactoryPartial{factory: f}, nil
}

// CreateInstance 创建新实例
func (p *SingleServiceFactoryPartial) CreateInstance() (uno.Component, error) {
	return p.factory.NewInstance()
}

// MultiServiceFactoryPartial XMultiServiceFactory 混入，由会话加载器构造
type MultiServiceFactoryPartial struct {
	loader uno.Loader
}

// NewMultiServiceFactoryPartial 用加载器创建混入
func NewMultiServiceFactoryPartial(loader uno.Loader) (*MultiServiceFactoryPartial, error) {
	if loader == nil {
		return nil, builder.ErrNoLoader
	}
	return &MultiServiceFactoryPartial{loader: loader}, nil
}

// CreateInstanceByName 按服务名创建实例
func (p *MultiServiceFactoryPartial) CreateInstanceByName(serviceName string) (uno.Component, error) {
	c, err := p.loader.CreateInstance(serviceName)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", serviceName, err)
	}
	return c, nil
}

// GetAvailableServiceNames 返回加载器可以创建的服务名；加载器不支持枚举时返回 nil
func (p *MultiServiceFactoryPartial) GetAvailableServiceNames() []string {
	if f, ok := p.loader.(uno.MultiServiceFactory); ok {
		return f.AvailableServiceNames()
	}
	return nil
}

// Register 把本包的适配器、延迟回调和模块构建器注册到目录
func Register(c *builder.Catalog) error {
	adapters := []builder.Adapter{
		{
			Name:        TypeProviderName,
			Description: "type introspection (XTypeProvider)",
			New: func(args builder.InitArgs) (any, error) {
				return NewTypeProviderPartial(args.Component, adapter.Interface(args, uno.XTypeProvider))
			},
		},
		{
			Name:        ServiceInfoName,
			Description: "service introspection (XServiceInfo)",
			New: func(args builder.InitArgs) (any, error) {
				return NewServiceInfoPartial(args.Component, adapter.Interface(args, uno.XServiceInfo))
			},
		},
		{
			Name:        ComponentName,
			Description: "lifetime control (XComponent)",
			New: func(args builder.InitArgs) (any, error) {
				return NewComponentPartial(args.Component, adapter.Interface(args, uno.XComponent))
			},
		},
		{
			Name:        SingleServiceFactoryName,
			Description: "single service factory (XSingleServiceFactory)",
			New: func(args builder.InitArgs) (any, error) {
				return NewSingleServiceFactoryPartial(args.Component, adapter.Interface(args, uno.XSingleServiceFactory))
			},
		},
		{
			Name:        MultiServiceFactoryName,
			Description: "service factory backed by the session loader",
			New: func(args builder.InitArgs) (any, error) {
				return NewMultiServiceFactoryPartial(args.Loader)
			},
		},
		{
			Name:        EventEventsName,
			Description: "disposing events (XEventListener)",
			NewEvents:   NewEventEventsMixin,
		},
	}
	for _, a := range adapters {
		if err := c.Register(a); err != nil {
			return err
		}
	}
	if err := c.RegisterCallback(EventEventsModule, LazyCallbackName, OnLazyCallback); err != nil {
		return err
	}
	return c.RegisterBuilder(Module, GetBuilder)
}

// GetBuilder 返回包含 lang 混入的注册表
func GetBuilder(component uno.Component, opts ...builder.Option) *builder.DefaultBuilder {
	b := builder.GetBuilder(component, opts...)
	b.AddImport(builder.ImportArg{
		Name:         ServiceInfoName,
		Capabilities: []string{uno.XServiceInfo},
		Optional:     true,
		Init:         builder.InitComponentHandle,
		Check:        builder.CheckInterfaceAny,
	})
	b.AutoAddInterface(uno.XComponent)
	b.AddImport(builder.ImportArg{
		Name:         SingleServiceFactoryName,
		Capabilities: []string{uno.XSingleServiceFactory, uno.XMultiServiceFactory},
		Optional:     true,
		Init:         builder.InitComponent,
		Check:        builder.CheckInterfaceOnlyFirst,
	})
	b.AddImport(builder.ImportArg{
		Name:         MultiServiceFactoryName,
		Capabilities: []string{uno.XMultiServiceFactory},
		Optional:     true,
		Init:         builder.InitLoader,
		Check:        builder.CheckInterfaceAny,
	})
	b.AddEvent(builder.EventArg{
		Module:       EventEventsModule,
		Class:        EventEventsClass,
		Callback:     LazyCallbackName,
		Capabilities: []string{uno.XComponent},
		Optional:     true,
		Check:        builder.CheckInterfaceAny,
	})
	return b
}
