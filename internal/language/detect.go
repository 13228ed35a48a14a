package language

const (
	Korean   = "ko"
	English  = "en"
	Japanese = "ja"
)

// Detect classifies short user text as Korean, English or Japanese by
// counting Unicode script hits. Text without any recognised letter is English.
// An exact Hangul/Kana tie with both counts above zero resolves to Japanese.
func Detect(text string) string {
	var hangulCount, kanaCount, letterCount int

	for _, r := range text {
		switch {
		case isHangul(r):
			hangulCount++
			letterCount++
		case isKana(r):
			kanaCount++
			letterCount++
		case isLetter(r):
			letterCount++
		}
	}

	if letterCount == 0 {
		return English
	}
	if hangulCount > kanaCount {
		return Korean
	}
	if kanaCount > 0 {
		return Japanese
	}
	return English
}

func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) || // syllables
		(r >= 0x1100 && r <= 0x11FF) || // jamo
		(r >= 0x3130 && r <= 0x318F) // compatibility jamo
}

func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || // hiragana
		(r >= 0x30A0 && r <= 0x30FF) // katakana
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 0x4E00 && r <= 0x9FFF)
}
