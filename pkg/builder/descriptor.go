package builder

// ImportArg 描述一个候选混入
//
// 两个 ImportArg 的身份只由 Name 决定，重复添加同名描述会覆盖旧值。
type ImportArg struct {
	// Name 适配器名（模块路径加类名，点号分隔）
	Name string
	// Capabilities 谓词使用的能力名
	Capabilities []string
	// Optional 为 false 时无条件包含
	Optional bool
	Init     InitKind
	Check    CheckKind
}

// Key 返回描述的身份键
func (a ImportArg) Key() string {
	return a.Name
}

func (a ImportArg) clone() ImportArg {
	a.Capabilities = append([]string(nil), a.Capabilities...)
	return a
}

// EventArg 描述一个事件混入
type EventArg struct {
	Module   string
	Class    string
	Callback string

	Capabilities []string
	Optional     bool
	Check        CheckKind
}

// EventKey 事件描述的身份键
type EventKey struct {
	Module   string
	Class    string
	Callback string
}

// Key 返回描述的身份键
func (a EventArg) Key() EventKey {
	return EventKey{Module: a.Module, Class: a.Class, Callback: a.Callback}
}

// AdapterName 返回事件混入的适配器名
func (a EventArg) AdapterName() string {
	return joinName(a.Module, a.Class)
}

// CallbackName 返回延迟回调在目录中的名称
func (a EventArg) CallbackName() string {
	return joinName(a.Module, a.Callback)
}

func (a EventArg) clone() EventArg {
	a.Capabilities = append([]string(nil), a.Capabilities...)
	return a
}

func joinName(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}
