package chain

import (
	"fmt"

	"synthpool/core"
	"synthpool/pkg/number"

	"github.com/spf13/cast"
)

// FieldAmount read an integer move field as amount
//
// u64 and wider come back as strings, narrower integers as json numbers
func FieldAmount(fields map[string]interface{}, key string, decimals int32) (core.Amount, error) {
	v, ok := fields[key]
	if !ok {
		return core.Amount{}, fmt.Errorf("field %s missing", key)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return core.Amount{}, fmt.Errorf("field %s: %w", key, err)
	}

	raw, err := number.ParseRaw(s)
	if err != nil {
		return core.Amount{}, fmt.Errorf("field %s: %w", key, err)
	}

	return core.NewAmount(raw, decimals), nil
}

// FieldStruct unwrap a nested move struct
//
// nested structs render as {"type": ..., "fields": {...}}, plain maps are returned as is
func FieldStruct(fields map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("field %s missing", key)
	}

	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}

	if inner, ok := m["fields"]; ok {
		return cast.ToStringMapE(inner)
	}

	return m, nil
}
