package builder

import (
	"fmt"
	"sort"

	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// Inspector 对单个组件做能力判断
//
// 接口集合只在第一次需要时查询一次并缓存，之后不会失效，保证同一次
// 合成中所有描述看到一致的结果。
type Inspector struct {
	component uno.Component
	services  uno.ServiceInfo

	loaded bool
	caps   map[string]struct{}
	err    error
}

// NewInspector 创建组件能力检查器
func NewInspector(component uno.Component) *Inspector {
	i := &Inspector{component: component}
	if si, ok := component.(uno.ServiceInfo); ok {
		i.services = si
	}
	return i
}

// Component 返回被检查的组件
func (i *Inspector) Component() uno.Component {
	return i.component
}

// ServiceInfo 返回组件的服务内省能力，可能为 nil
func (i *Inspector) ServiceInfo() uno.ServiceInfo {
	return i.services
}

// Capabilities 返回组件声明的接口名集合
func (i *Inspector) Capabilities() (map[string]struct{}, error) {
	if !i.loaded {
		i.loaded = true
		names, ok := uno.InterfaceNames(i.component)
		if !ok {
			i.err = fmt.Errorf("%w: %T", ErrNoTypeProvider, i.component)
		} else {
			i.caps = make(map[string]struct{}, len(names))
			for _, n := range names {
				i.caps[n] = struct{}{}
			}
		}
	}
	return i.caps, i.err
}

// CapabilityNames 返回排序后的接口名
func (i *Inspector) CapabilityNames() ([]string, error) {
	caps, err := i.Capabilities()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(caps))
	for n := range caps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (i *Inspector) has(name string) (bool, error) {
	caps, err := i.Capabilities()
	if err != nil {
		return false, err
	}
	_, ok := caps[name]
	return ok, nil
}

// SupportsAny 组件是否实现任一接口
func (i *Inspector) SupportsAny(names ...string) (bool, error) {
	for _, n := range names {
		ok, err := i.has(n)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// SupportsAll 组件是否实现全部接口，空列表为 false
func (i *Inspector) SupportsAll(names ...string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}
	for _, n := range names {
		ok, err := i.has(n)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// SupportsOnlyFirst 组件实现第一个接口且不实现其余接口
func (i *Inspector) SupportsOnlyFirst(names ...string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}
	first, err := i.has(names[0])
	if err != nil || !first {
		return false, err
	}
	rest, err := i.SupportsAny(names[1:]...)
	if err != nil {
		return false, err
	}
	return !rest, nil
}

func (i *Inspector) supportsService(name string) bool {
	return i.services != nil && i.services.SupportsService(name)
}

// ServiceAny 组件是否支持任一服务；没有服务内省能力时为 false
func (i *Inspector) ServiceAny(names ...string) bool {
	for _, n := range names {
		if i.supportsService(n) {
			return true
		}
	}
	return false
}

// ServiceAll 组件是否支持全部服务，空列表为 false
func (i *Inspector) ServiceAll(names ...string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if !i.supportsService(n) {
			return false
		}
	}
	return true
}

// ServiceOnlyFirst 组件支持第一个服务且不支持其余服务
func (i *Inspector) ServiceOnlyFirst(names ...string) bool {
	if len(names) == 0 || !i.supportsService(names[0]) {
		return false
	}
	return !i.ServiceAny(names[1:]...)
}

// Evaluate 根据检查方式判断描述是否适用
func (i *Inspector) Evaluate(check CheckKind, names []string) (bool, error) {
	switch check {
	case CheckNone:
		return true, nil
	case CheckServiceAny:
		return i.ServiceAny(names...), nil
	case CheckServiceAll:
		return i.ServiceAll(names...), nil
	case CheckServiceOnlyFirst:
		return i.ServiceOnlyFirst(names...), nil
	case CheckInterfaceAny:
		return i.SupportsAny(names...)
	case CheckInterfaceAll:
		return i.SupportsAll(names...)
	case CheckInterfaceOnlyFirst:
		return i.SupportsOnlyFirst(names...)
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidKind, check)
	}
}

// SupportsAny 判断组件是否实现任一接口
func SupportsAny(component uno.Component, names ...string) (bool, error) {
	return NewInspector(component).SupportsAny(names...)
}

// SupportsAll 判断组件是否实现全部接口
func SupportsAll(component uno.Component, names ...string) (bool, error) {
	return NewInspector(component).SupportsAll(names...)
}

// SupportsOnlyFirst 判断组件是否只实现第一个接口
func SupportsOnlyFirst(component uno.Component, names ...string) (bool, error) {
	return NewInspector(component).SupportsOnlyFirst(names...)
}
