package builder

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/nerdneilsfield/go-ooodev/pkg/events"
	"go.uber.org/zap"
)

// Group 混入在基类列表中的分组
type Group int

const (
	// GroupPartial 只接收组件的混入
	GroupPartial Group = iota
	// GroupInterface 其他构造约定的混入
	GroupInterface
	// GroupEvent 事件混入
	GroupEvent
)

func (g Group) String() string {
	switch g {
	case GroupPartial:
		return "partial"
	case GroupInterface:
		return "interface"
	case GroupEvent:
		return "event"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Skipped 被跳过的描述及原因
type Skipped struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Reason string `json:"reason" yaml:"reason" toml:"reason"`
}

// 跳过原因
const (
	ReasonPredicate = "capability check failed"
	ReasonDuplicate = "duplicate adapter"
	ReasonInherited = "inherited through"
)

type mixin struct {
	name         string
	group        Group
	adapter      Adapter
	init         InitKind
	capabilities []string
	callback     events.LazyCallback
}

type resolved struct {
	partials   []*mixin
	interfaces []*mixin
	events     []*mixin
	skipped    []Skipped
	omitted    []string
}

// prune 去掉已经是其他混入祖先的混入，返回祖先名到后代名的映射
//
// 祖先仍然通过后代出现在方法解析顺序中，后代的 Go 值内嵌了祖先。
func (r *resolved) prune(parentsOf func(string) []string) map[string]string {
	all := r.all()
	if len(all) < 2 {
		return nil
	}

	ancestors := make(map[string]map[string]bool, len(all))
	for _, m := range all {
		ancestors[m.name] = collectAncestors(m.name, parentsOf)
	}

	inherited := make(map[string]string)
	for _, m := range all {
		for _, d := range all {
			if _, gone := inherited[d.name]; gone || d == m {
				continue
			}
			if ancestors[d.name][m.name] {
				inherited[m.name] = d.name
				d.capabilities = append(append([]string(nil), d.capabilities...), m.capabilities...)
				r.skipped = append(r.skipped, Skipped{Name: m.name, Reason: ReasonInherited + " " + d.name})
				break
			}
		}
	}
	if len(inherited) == 0 {
		return nil
	}

	keep := func(ms []*mixin) []*mixin {
		out := ms[:0]
		for _, m := range ms {
			if _, ok := inherited[m.name]; !ok {
				out = append(out, m)
			}
		}
		return out
	}
	r.partials = keep(r.partials)
	r.interfaces = keep(r.interfaces)
	r.events = keep(r.events)
	return inherited
}

func collectAncestors(name string, parentsOf func(string) []string) map[string]bool {
	seen := make(map[string]bool)
	stack := append([]string(nil), parentsOf(name)...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] || n == name {
			continue
		}
		seen[n] = true
		stack = append(stack, parentsOf(n)...)
	}
	return seen
}

func (r *resolved) all() []*mixin {
	out := make([]*mixin, 0, len(r.partials)+len(r.interfaces)+len(r.events))
	out = append(out, r.partials...)
	out = append(out, r.interfaces...)
	return append(out, r.events...)
}

// predicate 评估可选描述；评估出错只记录日志并视为不满足
func (b *DefaultBuilder) predicate(name string, check CheckKind, caps []string) bool {
	ok, err := b.inspector.Evaluate(check, caps)
	if err != nil {
		b.opts.logger.Warn("capability check failed",
			zap.String("adapter", name),
			zap.Stringer("check", check),
			zap.Error(err))
		return false
	}
	return ok
}

func (b *DefaultBuilder) resolve(baseName string) (*resolved, error) {
	log := b.opts.logger
	r := &resolved{}
	seen := map[string]bool{baseName: true}

	for _, arg := range b.imports.list() {
		if _, omitted := b.omit[arg.Name]; omitted {
			r.omitted = append(r.omitted, arg.Name)
			continue
		}
		if seen[arg.Name] {
			r.skipped = append(r.skipped, Skipped{Name: arg.Name, Reason: ReasonDuplicate})
			continue
		}
		if arg.Optional && !b.predicate(arg.Name, arg.Check, arg.Capabilities) {
			r.skipped = append(r.skipped, Skipped{Name: arg.Name, Reason: ReasonPredicate})
			continue
		}

		adapter, err := b.opts.catalog.Resolve(arg.Name)
		if err == nil && adapter.New == nil {
			err = &ResolveError{Name: arg.Name, Err: fmt.Errorf("%w: events adapter used as import", ErrAdapterNotFound)}
		}
		if err != nil {
			log.Error("failed to resolve adapter",
				zap.String("adapter", arg.Name),
				zap.Bool("optional", arg.Optional),
				zap.Error(err))
			if !arg.Optional && b.opts.strict {
				return nil, err
			}
			r.skipped = append(r.skipped, Skipped{Name: arg.Name, Reason: err.Error()})
			continue
		}

		seen[arg.Name] = true
		m := &mixin{
			name:         arg.Name,
			adapter:      adapter,
			init:         arg.Init,
			capabilities: arg.Capabilities,
		}
		if arg.Init == InitComponent {
			m.group = GroupPartial
			r.partials = append(r.partials, m)
		} else {
			m.group = GroupInterface
			r.interfaces = append(r.interfaces, m)
		}
	}

	for _, arg := range b.events.list() {
		name := arg.AdapterName()
		if _, omitted := b.omit[name]; omitted {
			r.omitted = append(r.omitted, name)
			continue
		}
		if seen[name] {
			r.skipped = append(r.skipped, Skipped{Name: name, Reason: ReasonDuplicate})
			continue
		}
		if arg.Optional && !b.predicate(name, arg.Check, arg.Capabilities) {
			r.skipped = append(r.skipped, Skipped{Name: name, Reason: ReasonPredicate})
			continue
		}

		adapter, err := b.opts.catalog.Resolve(name)
		if err == nil && !adapter.IsEvents() {
			err = &ResolveError{Name: name, Err: fmt.Errorf("%w: not an events adapter", ErrAdapterNotFound)}
		}
		var cb events.LazyCallback
		if err == nil {
			cb, err = b.opts.catalog.Callback(arg.CallbackName())
		}
		if err != nil {
			log.Error("failed to resolve events adapter",
				zap.String("adapter", name),
				zap.String("callback", arg.Callback),
				zap.Bool("optional", arg.Optional),
				zap.Error(err))
			if !arg.Optional && b.opts.strict {
				return nil, err
			}
			r.skipped = append(r.skipped, Skipped{Name: name, Reason: err.Error()})
			continue
		}

		seen[name] = true
		r.events = append(r.events, &mixin{
			name:         name,
			group:        GroupEvent,
			adapter:      adapter,
			init:         InitCallback,
			capabilities: arg.Capabilities,
			callback:     cb,
		})
	}

	return r, nil
}

// BuildClass 解析并合成组合类；base 为空时使用 ComponentBase
func (b *DefaultBuilder) BuildClass(base string) (*Class, error) {
	start := time.Now()
	class, err := b.buildClass(base)
	b.record(class, start, err)
	return class, err
}

// Build 合成组合类并用组件创建实例
func (b *DefaultBuilder) Build(base string) (*Composite, error) {
	start := time.Now()
	class, err := b.buildClass(base)
	if err != nil {
		b.record(class, start, err)
		return nil, err
	}
	inst, err := class.New(b.component)
	b.record(class, start, err)
	return inst, err
}

func (b *DefaultBuilder) buildClass(base string) (*Class, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if base == "" {
		base = ComponentBaseName
	}
	log := b.opts.logger

	baseAdapter, err := b.opts.catalog.Resolve(base)
	if err != nil {
		return nil, fmt.Errorf("base class: %w", err)
	}
	if baseAdapter.New == nil {
		return nil, fmt.Errorf("base class %s has no component factory", base)
	}

	r, err := b.resolve(base)
	if err != nil {
		return nil, err
	}

	inherited := r.prune(b.opts.catalog.parents)
	mixins := r.all()
	class := &Class{
		name:      shortName(base),
		base:      baseAdapter,
		skipped:   r.skipped,
		omitted:   r.omitted,
		inherited: inherited,
		opts:      b.opts,
	}

	if len(mixins) == 0 && b.props.len() == 0 {
		class.mro, err = linearize(base, baseAdapter.Parents, b.opts.catalog.parents)
		if err != nil {
			return nil, &SynthesisError{Class: class.name, Bases: []string{base}, Err: err}
		}
		return class, nil
	}

	bases := make([]string, 0, len(mixins)+1)
	bases = append(bases, base)
	for _, m := range mixins {
		bases = append(bases, m.name)
	}

	ctx := &ClassCreateContext{Name: b.className(base, bases), Bases: append([]string(nil), bases...)}
	b.opts.hooks.fireCreate(ctx)
	if ctx.Cancel {
		log.Debug("class creation cancelled", zap.String("class", ctx.Name))
		class.mro, err = linearize(base, baseAdapter.Parents, b.opts.catalog.parents)
		if err != nil {
			return nil, &SynthesisError{Class: class.name, Bases: []string{base}, Err: err}
		}
		return class, nil
	}

	mro, err := linearize(ctx.Name, bases, b.opts.catalog.parents)
	if err != nil {
		log.Error("failed to synthesize class",
			zap.String("class", ctx.Name),
			zap.Strings("bases", bases),
			zap.Error(err))
		return nil, &SynthesisError{Class: ctx.Name, Bases: bases, Err: err}
	}

	class.name = ctx.Name
	class.synthesized = true
	class.mixins = mixins
	class.bases = bases
	class.mro = mro

	b.props.each(func(name string, value any) {
		pctx := &ClassPropertyContext{Class: class, Name: name, Value: value}
		b.opts.hooks.fireProperty(pctx)
		if pctx.Cancel {
			return
		}
		class.setProperty(pctx.Name, pctx.Value)
	})

	log.Debug("synthesized class",
		zap.String("class", class.name),
		zap.Strings("mro", mro),
		zap.Int("skipped", len(r.skipped)),
		zap.Int("omitted", len(r.omitted)))

	return class, nil
}

func (b *DefaultBuilder) className(base string, bases []string) string {
	if b.opts.className != "" {
		return b.opts.className
	}
	h := fnv.New32a()
	for _, name := range bases[1:] {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s_%08x", shortName(base), h.Sum32())
}

func (b *DefaultBuilder) record(class *Class, start time.Time, err error) {
	if b.opts.recorder == nil {
		return
	}
	report := BuildReport{
		ID:        uuid.NewString(),
		Timestamp: start,
		Target:    targetName(b.component),
		Duration:  time.Since(start),
	}
	if class != nil {
		info := class.Describe()
		report.Class = info.Name
		report.Synthesized = info.Synthesized
		report.Skipped = info.Skipped
		report.Omitted = info.Omitted
		for _, m := range info.Mixins {
			report.Mixins = append(report.Mixins, m.Name)
		}
	}
	if err != nil {
		report.Error = err.Error()
		var synthErr *SynthesisError
		if errors.As(err, &synthErr) {
			report.Class = synthErr.Class
		}
	}
	b.opts.recorder.RecordBuild(report)
}

// Recorder 接收构建报告
type Recorder interface {
	RecordBuild(report BuildReport)
}

// BuildReport 一次构建的摘要
type BuildReport struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Target      string        `json:"target"`
	Class       string        `json:"class"`
	Synthesized bool          `json:"synthesized"`
	Mixins      []string      `json:"mixins"`
	Skipped     []Skipped     `json:"skipped,omitempty"`
	Omitted     []string      `json:"omitted,omitempty"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}

func shortName(name string) string {
	_, class := SplitAdapterName(name)
	return class
}

func targetName(component any) string {
	if si, ok := component.(interface{ ImplementationName() string }); ok {
		if n := si.ImplementationName(); n != "" {
			return n
		}
	}
	return fmt.Sprintf("%T", component)
}
