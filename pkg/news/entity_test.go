package news

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&amp;", "&"},
		{"&bogus;", "&bogus;"},
		{"", ""},
		{"no entities", "no entities"},
		{"x &lt; y &gt; z", "x < y > z"},
		{"it&#39;s", "it's"},
		{"&#x3C;tag&#X3e;", "<tag>"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"caf&eacute;", "café"},
		{"&semi;", ";"},
		// Any malformed reference returns the whole input untouched.
		{"&amp; &bogus;", "&amp; &bogus;"},
		{"A & B &amp; C", "A & B &amp; C"},
		{"&amp", "&amp"},
		{"&#;", "&#;"},
		{"&#xZZ;", "&#xZZ;"},
		{"&ampfoo;", "&ampfoo;"},
		// Invalid code points are failures too, not U+FFFD.
		{"&#xD800;", "&#xD800;"},
		{"a &#55296; b", "a &#55296; b"},
		{"&#x110000;", "&#x110000;"},
		{"&#0;", "&#0;"},
		{"&amp; &#99999999999;", "&amp; &#99999999999;"},
		{"&#x10FFFF;", "\U0010FFFF"},
	}

	for _, tt := range tests {
		if got := DecodeEntities(tt.in); got != tt.want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntityLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"&amp;rest", 5},
		{"&#123;", 6},
		{"&#x1F600;", 9},
		{"&;", 0},
		{"&amp rest", 0},
		{"amp;", 0},
	}

	for _, tt := range tests {
		if got := entityLen(tt.in); got != tt.want {
			t.Errorf("entityLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
