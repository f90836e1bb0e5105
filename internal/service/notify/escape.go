package notify

import "strings"

// escapePowerShell escapes a value for use inside a double-quoted PowerShell
// string, preventing $variable and $(subexpression) expansion.
func escapePowerShell(s string) string {
	s = strings.ReplaceAll(s, "`", "``")
	s = strings.ReplaceAll(s, "$", "`$")
	s = strings.ReplaceAll(s, `"`, "`\"")
	s = strings.ReplaceAll(s, "\r", "")

	return strings.ReplaceAll(s, "\n", "`n")
}
