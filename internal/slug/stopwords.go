// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

// stopWords holds the words dropped from slugs, covering English and Hindi
// (plus a few romanized Hindi forms that show up in mixed-script titles).
// Lookups happen on the lowercased token, so the Latin entries match
// case-insensitively; Devanagari has no case.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		// English
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "been", "be",
		"this", "that", "these", "those", "will", "have", "has", "had",
		"what", "where", "when", "who", "why", "how", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "such", "no", "nor",
		"not", "only", "own", "same", "so", "than", "too", "very", "can",
		"just", "should", "now", "it", "its",

		// Hindi
		"का", "की", "के", "को", "ने", "से", "में", "पर", "और", "या",
		"है", "हैं", "था", "थी", "थे", "हो", "हुए", "गया", "गई", "गए",
		"एक", "यह", "वह", "इस", "उस", "कि", "जो", "तक", "भी", "ही", "कर",
		"किया",

		// Romanized Hindi
		"liye", "saath", "kon", "kya", "kaise",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// isStopWord reports whether the given lowercased token is a stop word.
func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
