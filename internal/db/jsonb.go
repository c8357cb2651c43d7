/*-------------------------------------------------------------------------
 *
 * jsonb.go
 *    JSONB map type for PostgreSQL columns
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/jsonb.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

/* JSONBMap maps a jsonb column to a Go map */
type JSONBMap map[string]interface{}

/* Value implements driver.Valuer */
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	return data, nil
}

/* Scan implements sql.Scanner */
func (m *JSONBMap) Scan(src interface{}) error {
	if src == nil {
		*m = make(JSONBMap)
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	if len(data) == 0 {
		*m = make(JSONBMap)
		return nil
	}
	return json.Unmarshal(data, m)
}

/* FromMap converts a plain map to JSONBMap */
func FromMap(m map[string]interface{}) JSONBMap {
	if m == nil {
		return nil
	}
	return JSONBMap(m)
}

/* ToMap converts a JSONBMap back to a plain map */
func (m JSONBMap) ToMap() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}(m)
}
