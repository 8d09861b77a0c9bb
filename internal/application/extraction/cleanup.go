package extraction

import "strings"

// stripFormatting removes code fences, language tags and surrounding prose,
// returning the outermost {...} block or "" when there is none.
//
//	"```json\n{...}\n```" → "{...}"
//	"JSON: {...} hope this helps" → "{...}"
func stripFormatting(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		// Drop the language tag on the opening fence line.
		if nl := strings.IndexByte(after, '\n'); nl != -1 {
			after = after[nl+1:]
		} else {
			after = strings.TrimLeft(after, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
