// Package manifest 从 YAML、TOML 或 JSON 文件描述组件和构建配方
//
// 清单由两部分组成：component 描述一个进程内组件（uno.Object）声明的
// 接口、服务和数据；recipe 描述如何为它填充注册表。
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest 清单内容无效
var ErrInvalidManifest = errors.New("invalid manifest")

// ErrUnsupportedFormat 不支持的清单格式
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Extensions 支持的清单扩展名，按查找顺序排列
var Extensions = []string{".yaml", ".yml", ".toml", ".json"}

// Element 命名元素
type Element struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value any    `json:"value" yaml:"value" toml:"value"`
}

// Component 组件描述
type Component struct {
	Implementation string         `json:"implementation" yaml:"implementation" toml:"implementation"`
	Interfaces     []string       `json:"interfaces" yaml:"interfaces" toml:"interfaces"`
	Services       []string       `json:"services,omitempty" yaml:"services,omitempty" toml:"services,omitempty"`
	Properties     map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Elements       []Element      `json:"elements,omitempty" yaml:"elements,omitempty" toml:"elements,omitempty"`
	Items          []any          `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// Import 导入描述
type Import struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
	Optional     bool     `json:"optional" yaml:"optional" toml:"optional"`
	Init         string   `json:"init,omitempty" yaml:"init,omitempty" toml:"init,omitempty"`
	Check        string   `json:"check,omitempty" yaml:"check,omitempty" toml:"check,omitempty"`
}

// Event 事件描述
type Event struct {
	Module       string   `json:"module" yaml:"module" toml:"module"`
	Class        string   `json:"class" yaml:"class" toml:"class"`
	Callback     string   `json:"callback" yaml:"callback" toml:"callback"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
	Optional     bool     `json:"optional" yaml:"optional" toml:"optional"`
	Check        string   `json:"check,omitempty" yaml:"check,omitempty" toml:"check,omitempty"`
}

// Recipe 构建配方
type Recipe struct {
	Base          string         `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	ClassName     string         `json:"class_name,omitempty" yaml:"class_name,omitempty" toml:"class_name,omitempty"`
	AutoInterface bool           `json:"auto_interface" yaml:"auto_interface" toml:"auto_interface"`
	Modules       []string       `json:"modules,omitempty" yaml:"modules,omitempty" toml:"modules,omitempty"`
	Imports       []Import       `json:"imports,omitempty" yaml:"imports,omitempty" toml:"imports,omitempty"`
	Events        []Event        `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
	Omit          []string       `json:"omit,omitempty" yaml:"omit,omitempty" toml:"omit,omitempty"`
	Properties    map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// Manifest 一个完整的清单
type Manifest struct {
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Component Component `json:"component" yaml:"component" toml:"component"`
	Recipe    Recipe    `json:"recipe" yaml:"recipe" toml:"recipe"`

	// Path 清单文件路径，从文件加载时设置
	Path string `json:"-" yaml:"-" toml:"-"`
}

// Load 按扩展名加载清单
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if data, err = decodeText(data); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Parse 按格式解析清单；ext 为扩展名，如 ".yaml"
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		_, err = toml.Decode(string(data), &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Find 在目录中按名称查找清单；name 本身是文件时直接返回
func Find(name string, dirs []string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	for _, dir := range dirs {
		for _, ext := range Extensions {
			candidate := filepath.Join(dir, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("manifest %q not found in %v", name, dirs)
}

// Validate 检查描述是否完整，构造方式和检查方式是否可解析
func (m *Manifest) Validate() error {
	var errs []error
	if m.Component.Implementation == "" {
		errs = append(errs, fmt.Errorf("component.implementation is required"))
	}
	for i, imp := range m.Recipe.Imports {
		if imp.Name == "" {
			errs = append(errs, fmt.Errorf("recipe.imports[%d]: name is required", i))
		}
		if _, err := builder.ParseInitKind(imp.Init); err != nil {
			errs = append(errs, fmt.Errorf("recipe.imports[%d]: %w", i, err))
		}
		if _, err := builder.ParseCheckKind(imp.Check); err != nil {
			errs = append(errs, fmt.Errorf("recipe.imports[%d]: %w", i, err))
		}
	}
	for i, ev := range m.Recipe.Events {
		if ev.Module == "" || ev.Class == "" || ev.Callback == "" {
			errs = append(errs, fmt.Errorf("recipe.events[%d]: module, class and callback are required", i))
		}
		if _, err := builder.ParseCheckKind(ev.Check); err != nil {
			errs = append(errs, fmt.Errorf("recipe.events[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, errors.Join(errs...))
	}
	return nil
}

// NewComponent 按组件描述创建进程内组件
func (m *Manifest) NewComponent() *uno.Object {
	c := m.Component
	opts := []uno.ObjectOption{
		uno.WithInterfaces(c.Interfaces...),
		uno.WithServices(c.Services...),
		uno.WithItems(c.Items...),
	}
	for _, name := range sortedKeys(c.Properties) {
		opts = append(opts, uno.WithProperty(name, c.Properties[name]))
	}
	for _, e := range c.Elements {
		opts = append(opts, uno.WithElement(e.Name, e.Value))
	}
	return uno.NewObject(c.Implementation, opts...)
}

// Builder 为组件创建注册表并按配方填充
//
// 顺序为：AutoInterface、模块构建器、显式导入、事件、省略、类属性。
func (m *Manifest) Builder(component uno.Component, opts ...builder.Option) (*builder.DefaultBuilder, error) {
	r := m.Recipe
	if r.ClassName != "" {
		opts = append(opts, builder.WithClassName(r.ClassName))
	}
	b := builder.GetBuilder(component, opts...)

	if r.AutoInterface {
		if err := b.AutoInterface(); err != nil {
			return nil, err
		}
	}
	for _, module := range r.Modules {
		if err := b.MergeModule(module); err != nil {
			return nil, err
		}
	}
	for _, imp := range r.Imports {
		arg, err := imp.ImportArg()
		if err != nil {
			return nil, err
		}
		b.AddImport(arg)
	}
	for _, ev := range r.Events {
		arg, err := ev.EventArg()
		if err != nil {
			return nil, err
		}
		b.AddEvent(arg)
	}
	b.SetOmit(r.Omit...)
	for _, name := range sortedKeys(r.Properties) {
		b.SetProperty(name, r.Properties[name])
	}
	return b, nil
}

// ImportArg 转换为导入描述
func (i Import) ImportArg() (builder.ImportArg, error) {
	initKind, err := builder.ParseInitKind(i.Init)
	if err != nil {
		return builder.ImportArg{}, err
	}
	check, err := builder.ParseCheckKind(i.Check)
	if err != nil {
		return builder.ImportArg{}, err
	}
	return builder.ImportArg{
		Name:         i.Name,
		Capabilities: i.Capabilities,
		Optional:     i.Optional,
		Init:         initKind,
		Check:        check,
	}, nil
}

// EventArg 转换为事件描述
func (e Event) EventArg() (builder.EventArg, error) {
	check, err := builder.ParseCheckKind(e.Check)
	if err != nil {
		return builder.EventArg{}, err
	}
	return builder.EventArg{
		Module:       e.Module,
		Class:        e.Class,
		Callback:     e.Callback,
		Capabilities: e.Capabilities,
		Optional:     e.Optional,
		Check:        check,
	}, nil
}

// decodeText 按 BOM 把 UTF-16 清单转换为 UTF-8，并去掉 UTF-8 BOM
func decodeText(data []byte) ([]byte, error) {
	dec := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
