package prompt

import "regexp"

var variablePattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Render fills {{variable}} placeholders in a prompt body for the
// playground. Placeholders without a supplied value are left intact so the
// user can see what is still missing.
func Render(body string, vars map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(body, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := vars[key]; ok {
			return val
		}
		return match
	})
}

// ExtractVariables lists the distinct placeholder names in order of first
// appearance.
func ExtractVariables(body string) []string {
	matches := variablePattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]bool, len(matches))
	var vars []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}
