package render

import (
	"strings"
	"unicode"
)

// FooterHint tells the user how to leave the dashboard.
const FooterHint = "Press ctrl+c to exit..."

// Header renders the frame's opening line for hostname.
func Header(pal Palette, hostname string) string {
	return pal.Heading("=== Real-Time System Resource Usage for " + Capitalize(hostname) + " ===")
}

// Footer renders the closing rule and exit hint.
func Footer(pal Palette) string {
	return pal.Heading(strings.Repeat("=", 40)) + "\n" + FooterHint
}

// SectionUnavailable renders the line that replaces a section whose
// snapshot could not be taken.
func SectionUnavailable(pal Palette, name, reason string) string {
	return pal.SectionTitle(name) + "\n" + pal.Paint(High, name+" unavailable: "+reason)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
