package common

import (
	"encoding/json"
	"testing"
)

func TestNodePropertiesMarshalOrder(t *testing.T) {
	extra := NewProperties()
	extra.Set("year", 2023)
	extra.Set("venue", "SIGGRAPH")
	extra.Set("description", "shadowed by the explicit field")
	props := NodeProperties{
		Description:    "Explicit radiance field built from 3D Gaussians.",
		SourceDocument: "3D Gaussian Splatting",
		Extra:          extra,
	}

	got, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"description":"Explicit radiance field built from 3D Gaussians.","source_paper":"3D Gaussian Splatting","year":2023,"venue":"SIGGRAPH"}`
	if string(got) != want {
		t.Fatalf("Marshal() = %s, want %s", got, want)
	}
}

func TestNodePropertiesOmitsEmptyDescription(t *testing.T) {
	got, err := json.Marshal(NodeProperties{SourceDocument: "NeRF"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(got) != `{"source_paper":"NeRF"}` {
		t.Fatalf("Marshal() = %s", got)
	}

	got, err = json.Marshal(NodeProperties{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(got) != `{}` {
		t.Fatalf("Marshal() = %s, want {}", got)
	}
}

func TestNodePropertiesUnmarshalKeepsResidualOrder(t *testing.T) {
	input := `{"zeta":1,"description":"d","alpha":{"nested":true},"source_paper":"p","mid":"x"}`

	var props NodeProperties
	if err := json.Unmarshal([]byte(input), &props); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if props.Description != "d" || props.SourceDocument != "p" {
		t.Fatalf("known fields not decoded: %+v", props)
	}

	if props.Extra == nil {
		t.Fatal("expected residual properties")
	}
	keys := make([]string, 0, props.Extra.Len())
	for pair := props.Extra.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	if len(keys) != 3 || keys[0] != "zeta" || keys[1] != "alpha" || keys[2] != "mid" {
		t.Fatalf("residual keys = %v, want [zeta alpha mid]", keys)
	}
}

func TestNodePropertiesUnmarshalNullDescription(t *testing.T) {
	var props NodeProperties
	if err := json.Unmarshal([]byte(`{"description":null,"source_paper":"NeRF"}`), &props); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if props.Description != "" || props.SourceDocument != "NeRF" || props.Extra != nil {
		t.Fatalf("unexpected props: %+v", props)
	}
}

func TestPropertiesRejectsNonObject(t *testing.T) {
	var props NodeProperties
	if err := json.Unmarshal([]byte(`[1,2]`), &props); err == nil {
		t.Fatal("expected error for JSON array")
	}
}

func TestNodePropertiesRoundTripKeepsOrder(t *testing.T) {
	input := `{"source_paper":"NeRF","year":2020,"venue":"ECCV","code":"github.com/bmild/nerf"}`

	var props NodeProperties
	if err := json.Unmarshal([]byte(input), &props); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(got) != input {
		t.Fatalf("round trip = %s, want %s", got, input)
	}
}

func TestPropertiesSetReplacesInPlace(t *testing.T) {
	p := NewProperties()
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("a", 3)
	if first := p.Oldest(); p.Len() != 2 || first.Key != "a" || first.Value != 3 {
		t.Fatalf("unexpected properties: %+v", p)
	}
	if v, ok := p.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = %v, %v", v, ok)
	}
}
