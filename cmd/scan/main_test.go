package main

import "testing"

func TestResolveChain(t *testing.T) {
	cases := []struct {
		name      string
		flagValue string
		flagSet   bool
		args      []string
		want      string
	}{
		{"default without positional", "ethereum", false, []string{"0xabc"}, "ethereum"},
		{"positional fills the default", "ethereum", false, []string{"0xabc", "bsc"}, "bsc"},
		{"explicit flag wins over positional", "base", true, []string{"0xabc", "bsc"}, "base"},
		{"explicit flag without positional", "polygon", true, []string{"0xabc"}, "polygon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveChain(tc.flagValue, tc.flagSet, tc.args); got != tc.want {
				t.Errorf("resolveChain(%q, %v, %v) = %q, want %q",
					tc.flagValue, tc.flagSet, tc.args, got, tc.want)
			}
		})
	}
}
