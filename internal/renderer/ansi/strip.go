package ansi

import "regexp"

const stripPattern = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"

var stripRegexp = regexp.MustCompile(stripPattern)

// Strip removes escape sequences. For any output of [Renderer.Render]
// it returns the highlighted source.
func Strip(s string) string {
	return stripRegexp.ReplaceAllString(s, "")
}
