package engine

import (
	"strings"
	"testing"
)

// The §8 acceptance, boundary-rejection, and backref-coverage properties
// are exercised directly against generator.Result in
// internal/generator/generator_test.go, where the per-phase slices are
// available without re-deriving phase boundaries from engine.Run's
// combined, deduplicated list. This file covers the properties that are
// specific to the entry point itself: determinism, dedup of the combined
// list, the head contract, the error channel, and the debug-trace side
// channel.

func TestRun_Determinism(t *testing.T) {
	first, _ := Run(`[a-z]{2,3}\d+`, "abc", false, false)
	second, _ := Run(`[a-z]{2,3}\d+`, "abc", false, false)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic output lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic output at index %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRun_Dedup(t *testing.T) {
	lines, _ := Run(`(a|a)b`, "xy", false, false)
	seen := make(map[string]bool)
	for _, s := range lines[1:] {
		if seen[s] {
			t.Fatalf("duplicate in output: %q", s)
		}
		seen[s] = true
	}
}

func TestRun_HeadContract(t *testing.T) {
	lines, _ := Run(`^a|b`, "xy", false, false)
	if lines[0] == "SUCCESS" {
		t.Fatalf("expected an anchor-inconsistency warning for ^a|b, got SUCCESS")
	}
	if !strings.Contains(lines[0], "anchor inconsistency") {
		t.Fatalf("expected anchor inconsistency warning, got %q", lines[0])
	}

	lines, _ = Run(`abc`, "xy", false, false)
	if lines[0] != "SUCCESS" {
		t.Fatalf("expected SUCCESS for a warning-free regex, got %q", lines[0])
	}
}

func TestRun_InputError(t *testing.T) {
	lines, _ := Run(`abc`, "a1", false, false)
	if !strings.HasPrefix(lines[0], "ERROR: InputError") {
		t.Fatalf("expected InputError for non-alphabetic base, got %q", lines[0])
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single-element error result, got %v", lines)
	}

	lines, _ = Run(`abc`, "a", false, false)
	if !strings.HasPrefix(lines[0], "ERROR: InputError") {
		t.Fatalf("expected InputError for a too-short base, got %q", lines[0])
	}
}

func TestRun_ScanError(t *testing.T) {
	lines, _ := Run(`a\`, "xy", false, false)
	if !strings.HasPrefix(lines[0], "ERROR:") {
		t.Fatalf("expected a scan error for trailing backslash, got %q", lines[0])
	}
}

func TestRun_ParseError(t *testing.T) {
	lines, _ := Run(`(a`, "xy", false, false)
	if !strings.HasPrefix(lines[0], "ERROR:") {
		t.Fatalf("expected a parse error for unbalanced group, got %q", lines[0])
	}

	lines, _ = Run(`a\9`, "xy", false, false)
	if !strings.HasPrefix(lines[0], "ERROR:") {
		t.Fatalf("expected a parse error for an unresolved backreference, got %q", lines[0])
	}
}

func TestRun_DebugTraceDoesNotAlterOutput(t *testing.T) {
	plain, traceNil := Run(`[a-z]+`, "abc", false, false)
	if traceNil != nil {
		t.Fatalf("expected nil trace when debug and stat are both false")
	}
	withDebug, trace := Run(`[a-z]+`, "abc", true, false)
	if trace == nil {
		t.Fatalf("expected a trace when debug is true")
	}
	if len(plain) != len(withDebug) {
		t.Fatalf("debug flag altered output length: %d vs %d", len(plain), len(withDebug))
	}
	for i := range plain {
		if plain[i] != withDebug[i] {
			t.Fatalf("debug flag altered output at index %d: %q vs %q", i, plain[i], withDebug[i])
		}
	}

	withStat, statTrace := Run(`[a-z]+`, "abc", false, true)
	if statTrace == nil {
		t.Fatalf("expected a trace when stat is true")
	}
	if len(plain) != len(withStat) {
		t.Fatalf("stat flag altered output length: %d vs %d", len(plain), len(withStat))
	}
}
