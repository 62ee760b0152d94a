package config

import (
	"fmt"
	"strconv"
)

// FieldKind is the JSON type of a config field.
type FieldKind int

// Field kinds.
const (
	FieldString FieldKind = iota
	FieldBool
	FieldInt
)

// Field describes a user-editable config key.
type Field struct {
	Key         string
	Description string
	Kind        FieldKind
}

// Fields lists the keys exposed by the settings page and `config set`.
var Fields = []Field{
	{Key: "home.bundle_limit", Description: "Archived bundles listed on home", Kind: FieldInt},
	{Key: "home.start_private", Description: "Start in private browsing", Kind: FieldBool},
	{Key: "home.theme", Description: "Color theme (default or light)", Kind: FieldString},
	{Key: "options.debug", Description: "Write a debug log", Kind: FieldBool},
	{Key: "options.data_directory", Description: "Directory for the database and logs", Kind: FieldString},
}

// LookupField finds the field for key.
func LookupField(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ParseFieldValue converts raw text to the typed value of key.
func ParseFieldValue(key, raw string) (any, error) {
	f, ok := LookupField(key)
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}

	switch f.Kind {
	case FieldBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false", key)
		}
		return v, nil
	case FieldInt:
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%s: expected a positive number", key)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Value returns the effective value of key as text.
func (c *Config) Value(key string) string {
	switch key {
	case "home.bundle_limit":
		return strconv.Itoa(c.BundleLimit())
	case "home.start_private":
		return strconv.FormatBool(c.StartPrivate())
	case "home.theme":
		return c.Theme()
	case "options.debug":
		return strconv.FormatBool(c.Options != nil && c.Options.Debug)
	case "options.data_directory":
		return c.DataDir()
	}
	return ""
}

// Apply sets key on the in-memory config. value must come from
// ParseFieldValue.
func (c *Config) Apply(key string, value any) {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Home == nil {
		c.Home = &Home{}
	}

	switch key {
	case "home.bundle_limit":
		c.Home.BundleLimit, _ = value.(int)
	case "home.start_private":
		c.Home.StartPrivate, _ = value.(bool)
	case "home.theme":
		c.Home.Theme, _ = value.(string)
	case "options.debug":
		c.Options.Debug, _ = value.(bool)
	case "options.data_directory":
		c.Options.DataDir, _ = value.(string)
	}
}
