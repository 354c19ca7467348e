package estimate

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	tcs := []struct {
		name     string
		patterns []string
		msg      string
		expect   string
	}{
		{
			name:   "no-pattern",
			msg:    "Fix ISSUE-42: bug\n\nsome details\n",
			expect: "Fix ISSUE-42: bug\n\nsome details",
		},
		{
			name:     "whole-match",
			patterns: []string{"ISSUE-[0-9]+"},
			msg:      "Fix ISSUE-42: bug",
			expect:   "ISSUE-42",
		},
		{
			name:     "first-group",
			patterns: []string{`^\[(\w+)\]`},
			msg:      "[billing] fix rounding",
			expect:   "billing",
		},
		{
			name:     "multiline",
			patterns: []string{`^Refs: (.+)$`},
			msg:      "fix rounding\n\nRefs: TICKET-7 \n",
			expect:   "TICKET-7",
		},
		{
			name:     "first-pattern-wins",
			patterns: []string{"TICKET-[0-9]+", "ISSUE-[0-9]+"},
			msg:      "ISSUE-1 and TICKET-2",
			expect:   "TICKET-2",
		},
		{
			name:     "fallback-pattern",
			patterns: []string{"TICKET-[0-9]+", "ISSUE-[0-9]+"},
			msg:      "ISSUE-1 only",
			expect:   "ISSUE-1",
		},
		{
			name:     "optional-group",
			patterns: []string{"ISSUE-[0-9]+( draft)?"},
			msg:      "ISSUE-9 done",
			expect:   "ISSUE-9",
		},
		{
			name:     "no-match",
			patterns: []string{"ISSUE-[0-9]+"},
			msg:      "\nrefactor things \n\nmore words",
			expect:   "refactor things",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			te, err := NewTitleExtractor(tc.patterns)
			if err != nil {
				t.Fatal(err)
			}
			if got := te.Title(tc.msg); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestTitleInvalidPattern(t *testing.T) {
	_, err := NewTitleExtractor([]string{"ok", "ISSUE-([0-9]+"})
	if err == nil {
		t.Fatal("expected invalid pattern error")
	}
	if !strings.Contains(err.Error(), "ISSUE-([0-9]+") {
		t.Fatalf("expected error to name the pattern, got: %v", err)
	}
}

func TestTitleNilExtractor(t *testing.T) {
	var te *TitleExtractor
	if got := te.Title("  hi  "); got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
	if te.Len() != 0 {
		t.Fatal("expected no patterns")
	}
}
