// Package comp 把具体适配器组合成完整的组件适配器
package comp

import (
	"fmt"
	"sync"

	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/beans"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/container"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/lang"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *builder.Catalog
)

// Register 把全部具体适配器注册到目录
func Register(c *builder.Catalog) error {
	registrars := []struct {
		module string
		fn     func(*builder.Catalog) error
	}{
		{container.Module, container.Register},
		{beans.Module, beans.Register},
		{lang.Module, lang.Register},
	}
	for _, r := range registrars {
		if err := r.fn(c); err != nil {
			return fmt.Errorf("register %s: %w", r.module, err)
		}
	}
	return nil
}

// NewCatalog 创建已注册全部具体适配器的目录
func NewCatalog() (*builder.Catalog, error) {
	c := builder.NewCatalog()
	if err := Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Catalog 返回进程内共享的目录，第一次调用时创建
func Catalog() *builder.Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog()
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// NewComponentComp 按组件声明的全部接口组合适配器
//
// 未显式指定目录时使用 Catalog()。组件还会带上释放事件混入。
func NewComponentComp(component uno.Component, opts ...builder.Option) (*builder.Composite, error) {
	opts = append([]builder.Option{builder.WithCatalog(Catalog())}, opts...)

	b := builder.GetBuilder(component, opts...)
	if err := b.AutoInterface(); err != nil {
		return nil, fmt.Errorf("component comp: %w", err)
	}
	b.AddEvent(builder.EventArg{
		Module:       lang.EventEventsModule,
		Class:        lang.EventEventsClass,
		Callback:     lang.LazyCallbackName,
		Capabilities: []string{uno.XComponent},
		Optional:     true,
		Check:        builder.CheckInterfaceAny,
	})
	return b.Build("")
}
