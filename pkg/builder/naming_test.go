package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PropertySet", "property_set"},
		{"NameAccess", "name_access"},
		{"URLTransformer", "url_transformer"},
		{"Index2Access", "index2_access"},
		{"Component", "component"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CamelToSnake(tt.input))
		})
	}
}

func TestNameRulesDerive(t *testing.T) {
	rules := DefaultNameRules()

	tests := []struct {
		name       string
		capability string
		module     string
		class      string
	}{
		{
			name:       "property set",
			capability: "com.sun.star.beans.XPropertySet",
			module:     "ooodev.adapter.beans.property_set_partial",
			class:      "PropertySetPartial",
		},
		{
			name:       "nested namespace",
			capability: "com.sun.star.ui.dialogs.XFilePicker",
			module:     "ooodev.adapter.ui.dialogs.file_picker_partial",
			class:      "FilePickerPartial",
		},
		{
			name:       "listener suffix is excluded",
			capability: "com.sun.star.lang.XEventListener",
			module:     "ooodev.adapter.lang.event_listener",
			class:      "EventListener",
		},
		{
			name:       "events suffix is excluded",
			capability: "com.sun.star.util.XModifyEvents",
			module:     "ooodev.adapter.util.modify_events",
			class:      "ModifyEvents",
		},
		{
			name:       "no interface marker",
			capability: "com.sun.star.text.TextDocument",
			module:     "ooodev.adapter.text.text_document_partial",
			class:      "TextDocumentPartial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, class := rules.Derive(tt.capability)
			assert.Equal(t, tt.module, module)
			assert.Equal(t, tt.class, class)
		})
	}
}

func TestAdapterName(t *testing.T) {
	name := AdapterName("com.sun.star.beans.XPropertySet")
	assert.Equal(t, "ooodev.adapter.beans.property_set_partial.PropertySetPartial", name)

	module, class := SplitAdapterName(name)
	assert.Equal(t, "ooodev.adapter.beans.property_set_partial", module)
	assert.Equal(t, "PropertySetPartial", class)
}

func TestNameRulesNormalize(t *testing.T) {
	rules := DefaultNameRules()

	assert.Equal(t,
		"ooodev.adapter.container.name_access_partial.NameAccessPartial",
		rules.Normalize("com.sun.star.container.XNameAccess"))

	adapter := "ooodev.adapter.container.name_access_partial.NameAccessPartial"
	assert.Equal(t, adapter, rules.Normalize(adapter))
}

func TestNameRulesCustomPrefix(t *testing.T) {
	rules := NameRules{Prefix: "my.adapters", ExcludedSuffixes: []string{"_comp"}}

	assert.Equal(t,
		"my.adapters.beans.property_set_partial.PropertySetPartial",
		rules.AdapterName("com.sun.star.beans.XPropertySet"))
	assert.Equal(t,
		"my.adapters.lang.event_listener_partial.EventListenerPartial",
		rules.AdapterName("com.sun.star.lang.XEventListener"))
}
