package trace

import (
	"github.com/bytedance/sonic"
)

// maxSnippetLen caps DataSnippet at defensive-capture size.
const maxSnippetLen = 500

// Snippet renders a payload capture suitable for Record.DataSnippet. Strings
// pass through; anything else is JSON-encoded. The result is truncated to
// maxSnippetLen characters. Unencodable values yield an empty snippet rather
// than an error.
func Snippet(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return truncateSnippet(val)
	default:
		out, err := sonic.MarshalString(val)
		if err != nil {
			return ""
		}
		return truncateSnippet(out)
	}
}

// truncateSnippet cuts a string to maxSnippetLen characters, not bytes, so a
// multibyte rune is never split.
func truncateSnippet(s string) string {
	if len(s) <= maxSnippetLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxSnippetLen {
		return s
	}
	return string(runes[:maxSnippetLen])
}
