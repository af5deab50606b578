package render

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/section"
)

// AnchorID derives the in-page anchor for a section from its heading:
// lower-cased, runs of non-alphanumerics collapsed to single hyphens,
// trimmed. Empty headings fall back to the section kind. Navigation sections
// link to these anchors by href, so editor preview and public viewer must
// derive identically; this is the single implementation both use.
func AnchorID(s section.Section) string {
	base := anchorize(s.Heading)
	if base == "" {
		return string(s.Kind)
	}
	return base
}

func anchorize(heading string) string {
	var sb strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
