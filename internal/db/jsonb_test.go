/*-------------------------------------------------------------------------
 *
 * jsonb_test.go
 *    Tests for the JSONB map type
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/db/jsonb_test.go
 *
 *-------------------------------------------------------------------------
 */

package db

import "testing"

/* TestJSONBMapValue tests serialization including the nil case */
func TestJSONBMapValue(t *testing.T) {
	var nilMap JSONBMap
	v, err := nilMap.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if string(v.([]byte)) != "{}" {
		t.Errorf("expected empty object for nil map, got %s", v)
	}

	m := JSONBMap{"plan_id": "abc"}
	v, err = m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if string(v.([]byte)) != `{"plan_id":"abc"}` {
		t.Errorf("unexpected serialization: %s", v)
	}
}

/* TestJSONBMapScan tests scanning from bytes, strings, and NULL */
func TestJSONBMapScan(t *testing.T) {
	var m JSONBMap
	if err := m.Scan([]byte(`{"amount":5}`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if m["amount"] != float64(5) {
		t.Errorf("expected amount 5, got %v", m["amount"])
	}

	if err := m.Scan(`{"decision":"approved"}`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if m["decision"] != "approved" {
		t.Errorf("expected decision approved, got %v", m["decision"])
	}

	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map after NULL scan, got %v", m)
	}

	if err := m.Scan(42); err == nil {
		t.Error("expected error for unsupported source type")
	}
}
