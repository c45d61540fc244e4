package logger

import "strings"

// controlCharReplacer escapes characters that could forge extra entries in
// line-oriented output (CWE-117).
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitize(s string) string {
	return controlCharReplacer.Replace(s)
}
