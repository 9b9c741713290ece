package builder

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

const (
	// DefaultAdapterPrefix 适配器模块的默认命名空间
	DefaultAdapterPrefix = "ooodev.adapter"

	partialSuffix   = "_partial"
	partialClass    = "Partial"
	interfaceMarker = "X"
)

// DefaultExcludedSuffixes 不追加 Partial 后缀的模块名结尾
var DefaultExcludedSuffixes = []string{"_events", "_listener"}

// camelBoundary 匹配 CamelCase 的单词边界，RE2 不支持环视，所以使用 regexp2
var camelBoundary = regexp2.MustCompile(`(?<=[a-z0-9])(?=[A-Z])|(?<=[A-Z])(?=[A-Z][a-z])`, regexp2.None)

// CamelToSnake 将 CamelCase 转为 snake_case
func CamelToSnake(s string) string {
	out, err := camelBoundary.Replace(s, "_", -1, -1)
	if err != nil {
		// 只有匹配超时才会出错，这里没有设置超时
		out = s
	}
	return strings.ToLower(out)
}

// NameRules 能力名到适配器名的推导规则
type NameRules struct {
	Prefix           string
	ExcludedSuffixes []string
}

// DefaultNameRules 返回默认推导规则
func DefaultNameRules() NameRules {
	return NameRules{
		Prefix:           DefaultAdapterPrefix,
		ExcludedSuffixes: append([]string(nil), DefaultExcludedSuffixes...),
	}
}

// IsUnoName 是否为 UNO 能力名
func IsUnoName(name string) bool {
	return strings.HasPrefix(name, uno.Prefix)
}

// Derive 从 UNO 能力名推导适配器模块路径和类名
func (r NameRules) Derive(capability string) (module, class string) {
	s := strings.TrimPrefix(capability, uno.Prefix)

	ns, ident := "", s
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		ns, ident = s[:idx], s[idx+1:]
	}
	ident = strings.TrimPrefix(ident, interfaceMarker)

	stem := CamelToSnake(ident)
	parts := make([]string, 0, 3)
	if r.Prefix != "" {
		parts = append(parts, r.Prefix)
	}
	if ns != "" {
		parts = append(parts, strings.ToLower(ns))
	}

	if r.excluded(stem) {
		return strings.Join(append(parts, stem), "."), ident
	}
	return strings.Join(append(parts, stem+partialSuffix), "."), ident + partialClass
}

// AdapterName 从 UNO 能力名推导完整适配器名
func (r NameRules) AdapterName(capability string) string {
	module, class := r.Derive(capability)
	return module + "." + class
}

// Normalize 将 UNO 能力名转换为适配器名，其他名称原样返回
func (r NameRules) Normalize(name string) string {
	if IsUnoName(name) {
		return r.AdapterName(name)
	}
	return name
}

func (r NameRules) excluded(stem string) bool {
	for _, suffix := range r.ExcludedSuffixes {
		if suffix != "" && strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return false
}

// AdapterName 使用默认规则推导适配器名
func AdapterName(capability string) string {
	return DefaultNameRules().AdapterName(capability)
}

// SplitAdapterName 将适配器名拆分为模块路径和类名
func SplitAdapterName(name string) (module, class string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
