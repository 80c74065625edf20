package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// StringList is a tag set stored as a JSON array column.
type StringList []string

func (l StringList) Contains(s string) bool {
	return slices.Contains(l, s)
}

func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported tag list type %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var out []string
	err := json.Unmarshal(raw, &out)
	if err != nil {
		return fmt.Errorf("failed to decode tag list: %w", err)
	}
	*l = out
	return nil
}
