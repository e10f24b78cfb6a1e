package logging

import "testing"

func TestServiceAttrs(t *testing.T) {
	attrs := serviceAttrs("nhl-lineup-service", "v1")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[0].Value.String() != "nhl-lineup-service" {
		t.Fatalf("expected service attr, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldVersion || attrs[1].Value.String() != "v1" {
		t.Fatalf("expected version attr, got %+v", attrs[1])
	}

	if got := serviceAttrs("", ""); len(got) != 0 {
		t.Fatalf("expected no attrs for empty values, got %+v", got)
	}
}
