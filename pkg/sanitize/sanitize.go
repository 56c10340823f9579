// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package sanitize strips script-injection vectors from user-supplied text.
//
// # Overview
//
// Two levels are provided. [Clean] is the strict pattern-based filter applied
// to every validated text field (titles, names, positions): it removes script
// tags, javascript: URLs, and inline event handlers outright. [HTML] is the
// permissive filter for rich-text fields (member descriptions): it keeps safe
// user-generated markup and drops everything else.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// scriptTag matches a complete <script ...>...</script> block.
	scriptTag = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	// javascriptScheme matches the javascript: URL scheme.
	javascriptScheme = regexp.MustCompile(`(?i)javascript:`)
	// eventHandler matches inline event handler attributes like onclick=.
	eventHandler = regexp.MustCompile(`(?i)on\w+\s*=`)

	// ugcPolicy keeps markup appropriate for user-generated content.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Clean removes script tags, javascript: schemes, and inline event handlers
// from the input.
//
// The full pattern set is re-applied until a complete round leaves the input
// unchanged, so a removal cannot splice a new match together — neither for its
// own pattern ("<scr<script></script>ipt>") nor for a different one
// ("<scronclick=ipt>") — and the function is idempotent:
// Clean(Clean(s)) == Clean(s).
func Clean(input string) string {
	output := input
	for {
		previous := output
		for _, pattern := range []*regexp.Regexp{scriptTag, javascriptScheme, eventHandler} {
			output = pattern.ReplaceAllString(output, "")
		}
		if output == previous {
			return output
		}
	}
}

// HTML sanitizes rich-text markup with a user-generated-content policy,
// keeping common formatting elements and stripping active content.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
