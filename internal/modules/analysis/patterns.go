package analysis

import (
	"regexp"
	"strings"
)

// patternRule couples a category signal regex with a short label used for
// title generation. Rules are checked in order; the first hit wins.
type patternRule struct {
	re    *regexp.Regexp
	label string
}

var painPatterns = []patternRule{
	{regexp.MustCompile(`frustrat\w*`), "Frustration"},
	{regexp.MustCompile(`difficult|hard to|struggle\w*`), "Difficulty"},
	{regexp.MustCompile(`confus\w*`), "Confusion"},
	{regexp.MustCompile(`slow|takes? too long|time[- ]consuming`), "Performance Issues"},
	{regexp.MustCompile(`broken|doesn'?t work|bug\w*`), "Bugs and Issues"},
	{regexp.MustCompile(`overwhelm\w*|too many|clutter\w*`), "Information Overload"},
	{regexp.MustCompile(`can'?t find|search.*(doesn'?t|not).*work`), "Search Problems"},
	{regexp.MustCompile(`wrong|incorrect|error\w*`), "Errors"},
	{regexp.MustCompile(`annoying|bother\w*|irritat\w*`), "Annoyance"},
}

var featurePatterns = []patternRule{
	{regexp.MustCompile(`wish\w*|would be great|would love`), "Desired Features"},
	{regexp.MustCompile(`need\w*|should have|should be`), "Requirements"},
	{regexp.MustCompile(`want\w*|looking for`), "User Wants"},
	{regexp.MustCompile(`miss\w*|lacking`), "Missing Features"},
	{regexp.MustCompile(`integrat\w*|connect\w*`), "Integrations"},
	{regexp.MustCompile(`mobile|phone|app`), "Mobile Support"},
	{regexp.MustCompile(`collaborat\w*|share\w*|team`), "Collaboration"},
	{regexp.MustCompile(`export\w*|download\w*`), "Export Features"},
}

var positivePatterns = []patternRule{
	{regexp.MustCompile(`love\w*|amazing|excellent`), "Highly Positive"},
	{regexp.MustCompile(`great|good|nice|helpful`), "Positive"},
	{regexp.MustCompile(`easy|simple|intuitive|straightforward`), "Ease of Use"},
	{regexp.MustCompile(`fast|quick|efficient`), "Speed"},
	{regexp.MustCompile(`recommend\w*`), "Recommends"},
}

// themeKeyword maps a substring to a canonical theme suggestion. Order
// matters: the first matching keyword decides the theme.
type themeKeyword struct {
	keyword string
	theme   string
}

var themeKeywords = []themeKeyword{
	{"onboard", "Onboarding Experience"},
	{"search", "Search Functionality"},
	{"export", "Export & Data Access"},
	{"notif", "Notification System"},
	{"mobile", "Mobile Experience"},
	{"collaborat", "Team Collaboration"},
	{"dashboard", "Dashboard & Analytics"},
	{"pricing", "Pricing & Value"},
	{"support", "Customer Support"},
	{"document", "Documentation"},
	{"setup", "Setup & Configuration"},
	{"performance", "Performance"},
	{"ui", "User Interface"},
	{"ux", "User Experience"},
	{"report", "Reporting"},
	{"integrat", "Integrations"},
}

// DefaultTheme is used when no keyword matches.
const DefaultTheme = "General Feedback"

// GuessTheme picks a theme suggestion from keywords in the lowercased text.
func GuessTheme(textLower string) string {
	for _, tk := range themeKeywords {
		if strings.Contains(textLower, tk.keyword) {
			return tk.theme
		}
	}
	return DefaultTheme
}
