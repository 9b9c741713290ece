package builder

import (
	"fmt"
	"strings"
)

// InitKind 混入构造约定
type InitKind int

const (
	// InitNone 无参构造
	InitNone InitKind = iota
	// InitComponent 只传入组件
	InitComponent
	// InitComponentHandle 传入组件和空能力句柄（跳过校验）
	InitComponentHandle
	// InitCallback 由 class_init 钩子提供构造参数
	InitCallback
	// InitLoader 传入会话加载器
	InitLoader
)

var initKindNames = map[InitKind]string{
	InitNone:            "none",
	InitComponent:       "component",
	InitComponentHandle: "component_handle",
	InitCallback:        "callback",
	InitLoader:          "loader",
}

func (k InitKind) String() string {
	if s, ok := initKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("InitKind(%d)", int(k))
}

// ParseInitKind 解析构造约定名称，空字符串视为 component
func ParseInitKind(s string) (InitKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return InitComponent, nil
	}
	for k, name := range initKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: init kind %q", ErrInvalidKind, s)
}

// CheckKind 谓词检查方式
type CheckKind int

const (
	// CheckNone 不检查，总是通过
	CheckNone CheckKind = iota
	CheckServiceAny
	CheckServiceAll
	CheckServiceOnlyFirst
	CheckInterfaceAny
	CheckInterfaceAll
	CheckInterfaceOnlyFirst
)

var checkKindNames = map[CheckKind]string{
	CheckNone:               "none",
	CheckServiceAny:         "service_any",
	CheckServiceAll:         "service_all",
	CheckServiceOnlyFirst:   "service_only_first",
	CheckInterfaceAny:       "interface_any",
	CheckInterfaceAll:       "interface_all",
	CheckInterfaceOnlyFirst: "interface_only_first",
}

func (k CheckKind) String() string {
	if s, ok := checkKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CheckKind(%d)", int(k))
}

// IsService 是否为服务检查
func (k CheckKind) IsService() bool {
	return k == CheckServiceAny || k == CheckServiceAll || k == CheckServiceOnlyFirst
}

// ParseCheckKind 解析检查方式名称，空字符串视为 none
func ParseCheckKind(s string) (CheckKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CheckNone, nil
	}
	for k, name := range checkKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: check kind %q", ErrInvalidKind, s)
}
