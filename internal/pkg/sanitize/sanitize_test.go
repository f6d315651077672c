package sanitize

import (
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
)

func TestText(t *testing.T) {
	p := bluemonday.StrictPolicy()

	cases := map[string]string{
		"<b>Desk</b> Clerk":                         "Desk Clerk",
		"Free coffee & snacks":                      "Free coffee & snacks",
		"Tom's &amp; Jerry's":                       "Tom's & Jerry's",
		"&lt;script&gt;alert(1)&lt;/script&gt;Tips": "Tips",
		"&lt;b&gt;bold&lt;/b&gt;":                   "bold",
		"  padded  ":                                "padded",
		"pay < 20 and > 10":                         "pay &lt; 20 and &gt; 10",
	}
	for in, want := range cases {
		if got := Text(p, in); got != want {
			t.Fatalf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTextNeverReturnsMarkup(t *testing.T) {
	p := bluemonday.StrictPolicy()

	inputs := []string{
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&#60;img src=x onerror=alert(1)&#62;",
		"<<script>script>alert(1)<</script>/script>",
	}
	for _, in := range inputs {
		if got := Text(p, in); strings.ContainsAny(got, "<>") {
			t.Fatalf("Text(%q) = %q still contains markup", in, got)
		}
	}
}
