// Copyright (c) 2026 Kaede CMS. All rights reserved.

package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ymiyake/kaede/pkg/sanitize"
)

/*
TestClean checks removal of the three script-injection vectors.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_text_untouched", "研究室の紹介", "研究室の紹介"},
		{"script_tag", `before<script>alert(1)</script>after`, "beforeafter"},
		{"script_tag_with_attrs", `<script type="text/javascript">x()</script>ok`, "ok"},
		{"script_tag_mixed_case", `<SCRIPT>alert(1)</SCRIPT>done`, "done"},
		{"javascript_scheme", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{"javascript_scheme_mixed_case", "JavaScript:void(0)", "void(0)"},
		{"event_handler", `<img src=x onerror=alert(1)>`, `<img src=x alert(1)>`},
		{"event_handler_spaced", `<div onclick = "x()">`, `<div  "x()">`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.Clean(tt.input))
		})
	}
}

/*
TestClean_Idempotent verifies that removal cannot splice a new vector
together: cleaning an already-clean string changes nothing, even for
inputs crafted so that removing one pattern reassembles a match for
another — an event handler hiding inside a split script tag, or an
event handler whose removal exposes a javascript: scheme.
*/
func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		`<scr<script>x</script>ipt>alert(1)</script>`,
		"javajavascript:script:alert(1)",
		`onclonclick=ick=`,
		`<scronclick=ipt>alert(1)</scronclick=ipt>`,
		"javaonx=script:alert(1)",
	}

	for _, input := range inputs {
		once := sanitize.Clean(input)
		twice := sanitize.Clean(once)
		assert.Equal(t, once, twice, "Clean must be idempotent for %q", input)
		assert.NotContains(t, once, "<script>")
		assert.NotContains(t, once, "javascript:")
	}
}

/*
TestHTML checks the rich-text policy: formatting survives, active content
does not.
*/
func TestHTML(t *testing.T) {
	t.Run("keeps_formatting", func(t *testing.T) {
		input := `<p>博士課程。<strong>専門</strong>は分散システム。</p>`
		assert.Equal(t, input, sanitize.HTML(input))
	})

	t.Run("strips_script", func(t *testing.T) {
		output := sanitize.HTML(`<p>hello</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>hello</p>", output)
	})

	t.Run("strips_event_handlers", func(t *testing.T) {
		output := sanitize.HTML(`<p onclick="x()">hello</p>`)
		assert.Equal(t, "<p>hello</p>", output)
	})
}
