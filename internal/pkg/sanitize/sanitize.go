// Package sanitize turns user supplied free text into plain text safe to
// store and render.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxPasses = 5

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Text strips markup from v with p. Entity-encoded markup is decoded and
// stripped too, repeatedly until the text stops changing. Entities such as
// &amp; come back as plain characters; angle brackets that survive as text
// stay escaped.
func Text(p *bluemonday.Policy, v string) string {
	cur := html.UnescapeString(v)
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(p.Sanitize(cur))
		if next == cur {
			break
		}
		cur = next
	}
	return strings.TrimSpace(angleEscaper.Replace(cur))
}
