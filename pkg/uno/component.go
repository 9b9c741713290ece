package uno

// Prefix 所有 UNO 类型名的公共前缀
const Prefix = "com.sun.star."

// 常用接口名
const (
	XTypeProvider         = "com.sun.star.lang.XTypeProvider"
	XServiceInfo          = "com.sun.star.lang.XServiceInfo"
	XComponent            = "com.sun.star.lang.XComponent"
	XEventListener        = "com.sun.star.lang.XEventListener"
	XSingleServiceFactory = "com.sun.star.lang.XSingleServiceFactory"
	XMultiServiceFactory  = "com.sun.star.lang.XMultiServiceFactory"
	XElementAccess        = "com.sun.star.container.XElementAccess"
	XNameAccess           = "com.sun.star.container.XNameAccess"
	XIndexAccess          = "com.sun.star.container.XIndexAccess"
	XPropertySet          = "com.sun.star.beans.XPropertySet"
)

// Component 是一个不透明的活动组件句柄
//
// 组件通过实现下面的接口暴露自身能力，构建器通过类型断言查询这些能力，
// 相当于 UNO 中的 queryInterface。
type Component interface{}

// Type 描述组件声明的一个接口类型
type Type struct {
	Name string
}

// TypeProvider 类型内省能力（XTypeProvider）
type TypeProvider interface {
	// Types 返回组件实现的全部接口类型
	Types() []Type
}

// ServiceInfo 服务内省能力（XServiceInfo）
type ServiceInfo interface {
	ImplementationName() string
	SupportedServiceNames() []string
	SupportsService(name string) bool
}

// ElementAccess 元素访问能力（XElementAccess）
type ElementAccess interface {
	HasElements() bool
}

// NameAccess 按名称访问（XNameAccess）
type NameAccess interface {
	ElementAccess
	ByName(name string) (any, error)
	ElementNames() []string
	HasByName(name string) bool
}

// IndexAccess 按索引访问（XIndexAccess）
type IndexAccess interface {
	ElementAccess
	Count() int
	ByIndex(index int) (any, error)
}

// PropertySet 属性集（XPropertySet）
type PropertySet interface {
	PropertyValue(name string) (any, error)
	SetPropertyValue(name string, value any) error
}

// EventObject 事件对象
type EventObject struct {
	Source Component
}

// EventListener 事件监听器（XEventListener），移除时按身份匹配，应使用指针实现
type EventListener interface {
	Disposing(event EventObject)
}

// Disposable 可释放组件（XComponent）
type Disposable interface {
	Dispose()
	AddEventListener(listener EventListener)
	RemoveEventListener(listener EventListener)
}

// Loader 会话级加载器句柄，用于创建服务实例
type Loader interface {
	CreateInstance(serviceName string) (Component, error)
}

// SingleServiceFactory 单服务工厂（XSingleServiceFactory）
type SingleServiceFactory interface {
	NewInstance() (Component, error)
}

// MultiServiceFactory 多服务工厂（XMultiServiceFactory）
type MultiServiceFactory interface {
	Loader
	AvailableServiceNames() []string
}

// InterfaceNames 返回组件声明的接口名；没有类型内省能力时 ok 为 false
func InterfaceNames(c Component) (names []string, ok bool) {
	tp, ok := c.(TypeProvider)
	if !ok {
		return nil, false
	}
	types := tp.Types()
	names = make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return names, true
}

// HasInterface 检查组件是否声明了指定接口
func HasInterface(c Component, name string) bool {
	names, ok := InterfaceNames(c)
	if !ok {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
