package testfixtures

import "testing"

func TestIDGeneratorProducesPaddedSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("snap")

	if first, second := gen.Next(), gen.Next(); first != "snap-001" || second != "snap-002" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestIDGeneratorDefaultsPrefix(t *testing.T) {
	gen := NewIDGenerator("")

	if next := gen.Next(); next != "id-001" {
		t.Fatalf("expected id-001, got %q", next)
	}
}

func TestIDGeneratorReset(t *testing.T) {
	gen := NewIDGenerator("snap")
	_ = gen.Next()
	_ = gen.Next()
	gen.Reset()

	if next := gen.Next(); next != "snap-001" {
		t.Fatalf("expected snap-001 after reset, got %q", next)
	}
}
