package validator

import (
	"strings"
	"testing"

	"github.com/ratchet-dev/ratchet/pkg/def"
)

func TestLint_CleanDefinition(t *testing.T) {
	// start -> work -> done (terminal)
	d := &def.Definition{
		States:   []string{"start", "work"},
		Messages: []string{"go", "finish"},
		Rules: []def.RuleDef{
			{From: "start", On: "go", To: "work"},
			{From: "work", On: "finish", To: "_"},
		},
	}

	if findings := Lint(d); len(findings) != 0 {
		t.Errorf("clean definition should produce no findings, got %v", findings)
	}
}

func TestLint_ShadowedRule(t *testing.T) {
	d := &def.Definition{
		States:   []string{"start"},
		Messages: []string{"go"},
		Rules: []def.RuleDef{
			{From: "start", On: "go", To: "start"},
			{From: "start", On: "go", To: "_"},
		},
	}

	findings := Lint(d)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	if !strings.Contains(findings[0], "shadowed") {
		t.Errorf("finding should mention shadowing, got %q", findings[0])
	}
}

func TestLint_HandlerShapeMismatch(t *testing.T) {
	d := &def.Definition{
		States:   []string{"start"},
		Messages: []string{"go", "stop"},
		Rules: []def.RuleDef{
			{From: "start", On: "go", To: "start", Handler: "complete"},
			{From: "start", On: "stop", To: "_", Handler: "advance"},
		},
	}

	findings := Lint(d)
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(findings), findings)
	}
	if !strings.Contains(findings[0], "non-terminal") {
		t.Errorf("expected a non-terminal finding first, got %q", findings[0])
	}
	if !strings.Contains(findings[1], "never completes") {
		t.Errorf("expected a never-completes finding second, got %q", findings[1])
	}
}

func TestLint_UnreachableState(t *testing.T) {
	// start loops on itself; island is never a target.
	d := &def.Definition{
		States:   []string{"start", "island"},
		Messages: []string{"go"},
		Rules: []def.RuleDef{
			{From: "start", On: "go", To: "start"},
			{From: "island", On: "go", To: "start"},
		},
	}

	findings := Lint(d)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	if !strings.Contains(findings[0], "unreachable") {
		t.Errorf("finding should mention reachability, got %q", findings[0])
	}
}

func TestLint_DeadEndState(t *testing.T) {
	d := &def.Definition{
		States:   []string{"start", "trap"},
		Messages: []string{"go"},
		Rules: []def.RuleDef{
			{From: "start", On: "go", To: "trap"},
		},
	}

	findings := Lint(d)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	if !strings.Contains(findings[0], "no rules") {
		t.Errorf("finding should mention the missing rules, got %q", findings[0])
	}
}
