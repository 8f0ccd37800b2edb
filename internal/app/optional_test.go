package app

import (
	"encoding/json"
	"testing"
)

func TestOptional_ThreeStates(t *testing.T) {
	type payload struct {
		Field Optional[int64] `json:"field"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.Field.Set {
		t.Fatal("absent field must not be marked set")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"field": null}`), &null); err != nil {
		t.Fatal(err)
	}
	if !null.Field.Set || !null.Field.Null {
		t.Fatalf("explicit null: %+v", null.Field)
	}
	if null.Field.Ptr() != nil {
		t.Fatal("cleared field must yield nil pointer")
	}

	var set payload
	if err := json.Unmarshal([]byte(`{"field": 42}`), &set); err != nil {
		t.Fatal(err)
	}
	if !set.Field.Set || set.Field.Null || set.Field.Value != 42 {
		t.Fatalf("value: %+v", set.Field)
	}
	if p := set.Field.Ptr(); p == nil || *p != 42 {
		t.Fatalf("pointer: %v", p)
	}
}
