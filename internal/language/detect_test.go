package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", English},
		{"hangul syllables", "안녕하세요", Korean},
		{"hangul jamo", "ᄀᄁᄂ", Korean},
		{"compatibility jamo", "ㅋㅋㅋ", Korean},
		{"hiragana", "こんにちは", Japanese},
		{"katakana", "カタカナ", Japanese},
		{"latin", "hello world", English},
		{"digits and punctuation", "1234 !?.,", English},
		{"emoji only", "😀🎉", English},
		{"ideographs only", "漢字", English},
		{"mostly korean with latin", "오늘 날씨 good", Korean},
		{"japanese with kanji", "今日はいい天気", Japanese},
		{"more kana than hangul", "안こんにちは", Japanese},
		{"more hangul than kana", "안녕하세요こ", Korean},
		{"exact tie favours japanese", "안こ", Japanese},
		{"larger exact tie", "안녕하こんに", Japanese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetect_InvalidUTF8IsTotal(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, English, Detect(string([]byte{0xff, 0xfe, 0xfd})))
	})
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", DefaultLocale},
		{"ko", Korean},
		{"ja-JP", Japanese},
		{"en-US,en;q=0.9", English},
		{"fr-FR, ja;q=0.5", Japanese},
		{"not a locale at all", DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocale(tt.raw))
		})
	}
}

func TestIsSupportedLocale(t *testing.T) {
	assert.True(t, IsSupportedLocale("ko"))
	assert.True(t, IsSupportedLocale("ja"))
	assert.False(t, IsSupportedLocale("ja-JP"))
	assert.False(t, IsSupportedLocale(""))
}
