// Package safety holds the client-side crisis language detector and the
// resource text shown alongside flagged messages.
package safety

import "regexp"

// The phrase list mirrors the list the MindMate service uses for its own
// moderation. The two are maintained independently; keeping them aligned is
// a product concern, not enforced here.
var crisisPattern = regexp.MustCompile(
	`(?i)\b(suicide|suicidal|kill myself|end my life|self[-. ]?harm|cut myself|don't want to live|want to die)\b`,
)

// Resources is the crisis support text rendered beneath flagged messages.
const Resources = "You're not alone. If you're in crisis, please reach out:\n" +
	"Nepal: 1166 (Lifeline Nepal) · International: 988 (Suicide & Crisis Lifeline)"

// Detect reports whether text contains a crisis indicator phrase. Matching
// is case-insensitive and bounded to whole words, so a phrase embedded in an
// unrelated compound word does not match.
func Detect(text string) bool {
	return crisisPattern.MatchString(text)
}
