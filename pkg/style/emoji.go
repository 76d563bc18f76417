package style

import "unicode"

// emojiRanges covers the main emoji blocks plus the common symbol blocks
// chat clients render as emoji.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended pictographs
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
}

// countEmoji counts emoji-class codepoints using rune ranges plus the
// Unicode symbol category.
func countEmoji(text string) int {
	count := 0
	for _, r := range text {
		if isEmoji(r) {
			count++
		}
	}
	return count
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	// Catch stragglers like ❤ (0x2764 is covered above) and misc symbols
	// outside the listed blocks.
	return r > 0x2FFF && unicode.Is(unicode.So, r)
}
