// Package adapter 包含具体适配器共用的校验逻辑
//
// 子包 container、beans、lang 提供各自的混入并注册到 builder.Catalog，
// comp 包把它们组合成完整的组件适配器。
package adapter

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// ErrMissingInterface 组件没有实现要求的接口
var ErrMissingInterface = errors.New("component does not implement interface")

// MissingInterfaceError 校验构造参数时发现组件缺少接口
type MissingInterfaceError struct {
	Adapter   string
	Interface string
}

func (e *MissingInterfaceError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Adapter, ErrMissingInterface, e.Interface)
}

func (e *MissingInterfaceError) Unwrap() error {
	return ErrMissingInterface
}

// Interface 返回构造时需要校验的接口名，空串表示跳过校验
//
// InitComponent 约定总是校验默认接口。InitComponentHandle 和
// InitCallback 约定下 nil 句柄表示跳过校验，字符串句柄替换默认接口。
func Interface(args builder.InitArgs, def string) string {
	switch args.Kind {
	case builder.InitComponentHandle, builder.InitCallback:
		if name, ok := args.Handle.(string); ok {
			return name
		}
		return ""
	default:
		return def
	}
}

// Validate 校验组件声明了 iface；iface 为空时直接通过
func Validate(adapterName string, component uno.Component, iface string) error {
	if iface == "" {
		return nil
	}
	if !uno.HasInterface(component, iface) {
		return &MissingInterfaceError{Adapter: adapterName, Interface: iface}
	}
	return nil
}

// Cast 校验后把组件转换为 Go 接口 T
func Cast[T any](adapterName string, component uno.Component, iface string) (T, error) {
	var zero T
	if err := Validate(adapterName, component, iface); err != nil {
		return zero, err
	}
	v, ok := component.(T)
	if !ok {
		name := iface
		if name == "" {
			name = reflect.TypeOf((*T)(nil)).Elem().String()
		}
		return zero, &MissingInterfaceError{Adapter: adapterName, Interface: name}
	}
	return v, nil
}
