package notes

import "testing"

func TestLabelKind(t *testing.T) {
	cases := []struct {
		raw  string
		want LabelKind
	}{
		{"", KindUnlabeled},
		{"   ", KindUnlabeled},
		{"failing", KindFailing},
		{" flake ", KindFlake},
		{"Failing", KindOther},
		{"wontfix", KindOther},
	}
	for _, tc := range cases {
		if got := ParseLabel(tc.raw).Kind(); got != tc.want {
			t.Fatalf("ParseLabel(%q).Kind() = %s, want %s", tc.raw, got, tc.want)
		}
	}
	if got := ParseLabel(" wontfix ").String(); got != "wontfix" {
		t.Fatalf("String() = %q, want wontfix", got)
	}
}
