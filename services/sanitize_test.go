package services

import "testing"

func TestSanitizeEscapesMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>Deal</b>", "&lt;b&gt;Deal&lt;/b&gt;"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's fine", "it&#39;s fine"},
		{"plain title 4K TV", "plain title 4K TV"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeLeavesEntitiesAlone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"&lt;b&gt;", "&lt;b&gt;"},
		{"&#39;quoted&#39;", "&#39;quoted&#39;"},
		{"&#x27;hex&#x27;", "&#x27;hex&#x27;"},
		{"broken & entity;", "broken &amp; entity;"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"<script>alert('x')</script>",
		"A & B < C > D",
		`"mixed" &amp; 'raw'`,
		"already &lt;escaped&gt;",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
