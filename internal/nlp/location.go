package nlp

import "strings"

const (
	locationOpenTag  = "<LOCATION>"
	locationCloseTag = "</LOCATION>"

	// Hard cap across the whole input; bounds pathological markup.
	maxLocations = 40
)

// ParseLocationTags extracts the free-text location mentions from a
// marked-up tagger output string. Line-break variants are normalized to a
// single space, the text is split on sentence-terminal periods and each
// <LOCATION>…</LOCATION> span is pulled out in order. Non-empty mentions
// are assigned 1-based sequential indexes across the whole input. An
// unmatched open tag truncates gracefully: the remainder of the fragment
// is taken as the mention and scanning of that fragment stops.
func ParseLocationTags(marked string) map[int]string {
	locations := make(map[int]string)
	if strings.TrimSpace(marked) == "" {
		return locations
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(marked), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\n", " ")

	index := 0
	for _, fragment := range strings.Split(normalized, ".") {
		for index < maxLocations {
			begin := strings.Index(fragment, locationOpenTag)
			if begin < 0 {
				break
			}
			begin += len(locationOpenTag)

			end := strings.Index(fragment[begin:], locationCloseTag)
			if end < 0 {
				// Unmatched open tag: take what is left and move on.
				if mention := strings.TrimSpace(fragment[begin:]); mention != "" {
					index++
					locations[index] = mention
				}
				fragment = ""
				break
			}
			end += begin

			if mention := strings.TrimSpace(fragment[begin:end]); mention != "" {
				index++
				locations[index] = mention
			}
			fragment = fragment[end+len(locationCloseTag):]
		}
		if index >= maxLocations {
			break
		}
	}
	return locations
}
