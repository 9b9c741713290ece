package test

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// NewNameContainer 创建一个声明 XNameAccess 的测试组件
func NewNameContainer() *uno.Object {
	return uno.NewObject("test.NameContainer",
		uno.WithInterfaces(uno.XTypeProvider, uno.XServiceInfo, uno.XElementAccess, uno.XNameAccess),
		uno.WithServices("com.sun.star.container.NameContainer"),
		uno.WithElement("first", 1),
		uno.WithElement("second", 2),
	)
}

// NewDocument 创建一个声明多个接口的测试组件
func NewDocument() *uno.Object {
	return uno.NewObject("test.Document",
		uno.WithInterfaces(
			uno.XTypeProvider,
			uno.XServiceInfo,
			uno.XComponent,
			uno.XPropertySet,
			uno.XElementAccess,
			uno.XIndexAccess,
			uno.XNameAccess,
		),
		uno.WithServices("com.sun.star.document.OfficeDocument", "com.sun.star.text.TextDocument"),
		uno.WithProperty("Title", "Untitled"),
		uno.WithProperty("CharHeight", 12.0),
		uno.WithElement("Standard", "page style"),
		uno.WithItems("p1", "p2", "p3"),
	)
}

// Opaque 一个没有任何内省能力的组件
type Opaque struct {
	Name string
}
