package llm

import "regexp"

var (
	wantsJSONRe  = regexp.MustCompile(`(?i)\b(json only|reply with json|return json)\b`)
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// WantsJSON reports whether a user message explicitly asks for JSON.
func WantsJSON(message string) bool {
	return wantsJSONRe.MatchString(message)
}

// ExtractJSONObject returns the outermost {...} span of text, or text
// unchanged when there is none.
func ExtractJSONObject(text string) string {
	if m := jsonObjectRe.FindString(text); m != "" {
		return m
	}
	return text
}
