package paramstr

import (
	"fmt"
	"maps"
)

// Values holds the parameter values of one Pattern, its default value policy
// and the cached render. Values is not safe for concurrent use.
//
// A Values is only mutated through its Pattern, which validates names.
type Values struct {
	values map[string]any

	defaultValue   any
	convertDefault bool
	// defaulted tracks names whose last assignment equaled the default and
	// was stored as absent.
	defaulted map[string]struct{}

	rendered string
	dirty    bool
}

func newValues(defaultValue any, convertDefault bool) *Values {
	return &Values{
		values:         make(map[string]any),
		defaultValue:   defaultValue,
		convertDefault: convertDefault,
		defaulted:      make(map[string]struct{}),
		dirty:          true,
	}
}

// Len returns the number of parameters with a value.
func (v *Values) Len() int {
	return len(v.values)
}

// Has reports whether name has a value.
func (v *Values) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Default returns the default value, or nil when none is set.
func (v *Values) Default() any {
	return v.defaultValue
}

// ConvertDefaultToAbsent reports whether values equal to the default are
// stored as absent.
func (v *Values) ConvertDefaultToAbsent() bool {
	return v.convertDefault
}

// Defaulted reports whether the last value assigned to name equaled the
// default and was stored as absent.
func (v *Values) Defaulted(name string) bool {
	_, ok := v.defaulted[name]
	return ok
}

func (v *Values) get(name string) any {
	return v.values[name]
}

// resolve returns the value to render for name: its own value, else the default.
func (v *Values) resolve(name string) (any, bool) {
	if val, ok := v.values[name]; ok {
		return val, true
	}
	if v.defaultValue != nil {
		return v.defaultValue, true
	}
	return nil, false
}

// set assigns value to name. A nil value unsets the parameter.
func (v *Values) set(name string, value any) {
	v.dirty = true
	delete(v.defaulted, name)

	if value == nil {
		delete(v.values, name)
		return
	}
	if v.equalsDefault(value) {
		delete(v.values, name)
		v.defaulted[name] = struct{}{}
		return
	}
	v.values[name] = value
}

func (v *Values) clear() {
	clear(v.values)
	clear(v.defaulted)
	v.dirty = true
}

func (v *Values) setDefault(value any) {
	v.defaultValue = value
	v.dirty = true
	v.dropDefaults()
}

func (v *Values) setConvertDefault(enabled bool) {
	v.convertDefault = enabled
	v.dropDefaults()
}

// dropDefaults removes stored values that equal the current default, so a
// stored value is always different from the default while conversion is on.
func (v *Values) dropDefaults() {
	for name, val := range v.values {
		if v.equalsDefault(val) {
			delete(v.values, name)
			v.defaulted[name] = struct{}{}
		}
	}
}

func (v *Values) equalsDefault(value any) bool {
	if !v.convertDefault || v.defaultValue == nil {
		return false
	}
	return fmt.Sprint(value) == fmt.Sprint(v.defaultValue)
}

// snapshot returns a copy of the current values.
func (v *Values) snapshot() map[string]any {
	return maps.Clone(v.values)
}

func (v *Values) clone() *Values {
	return &Values{
		values:         maps.Clone(v.values),
		defaultValue:   v.defaultValue,
		convertDefault: v.convertDefault,
		defaulted:      maps.Clone(v.defaulted),
		rendered:       v.rendered,
		dirty:          v.dirty,
	}
}
