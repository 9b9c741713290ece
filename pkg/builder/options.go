package builder

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"go.uber.org/zap"
)

// Option 构建器配置选项函数
type Option func(*options)

// options 构建器内部选项
type options struct {
	logger    *zap.Logger
	catalog   *Catalog
	loader    uno.Loader
	rules     NameRules
	strict    bool
	recorder  Recorder
	className string
	hooks     hooks
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  zap.NewNop(),
		catalog: DefaultCatalog,
		rules:   DefaultNameRules(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCatalog 设置适配器目录
func WithCatalog(catalog *Catalog) Option {
	return func(o *options) {
		if catalog != nil {
			o.catalog = catalog
		}
	}
}

// WithLoader 设置会话加载器，供 InitLoader 混入使用
func WithLoader(loader uno.Loader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// WithNameRules 设置名称推导规则
func WithNameRules(rules NameRules) Option {
	return func(o *options) {
		o.rules = rules
	}
}

// WithStrictImports 非可选混入解析失败时中止构建
func WithStrictImports(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithRecorder 设置构建记录器
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// WithClassName 指定合成类名
func WithClassName(name string) Option {
	return func(o *options) {
		o.className = name
	}
}

// OnClassCreate 订阅 class_create
func OnClassCreate(fn func(*ClassCreateContext)) Option {
	return func(o *options) {
		o.hooks.classCreate = append(o.hooks.classCreate, fn)
	}
}

// OnClassInit 订阅 class_init
func OnClassInit(fn func(*ClassInitContext)) Option {
	return func(o *options) {
		o.hooks.classInit = append(o.hooks.classInit, fn)
	}
}

// OnClassEventInit 订阅 class_event_init
func OnClassEventInit(fn func(*ClassEventInitContext)) Option {
	return func(o *options) {
		o.hooks.classEvent = append(o.hooks.classEvent, fn)
	}
}

// OnClassPropertyInit 订阅 class_property_init
func OnClassPropertyInit(fn func(*ClassPropertyContext)) Option {
	return func(o *options) {
		o.hooks.classProperty = append(o.hooks.classProperty, fn)
	}
}
