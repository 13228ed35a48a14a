package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	// "가" as a decomposed jamo sequence composes to the precomposed syllable.
	assert.Equal(t, "\uac00", NormalizeContent("  \u1100\u1161 \n"))
	assert.Equal(t, "", NormalizeContent("   "))
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("hi", 10))
	assert.NoError(t, ValidateContent(strings.Repeat("가", 10), 10))
	assert.ErrorIs(t, ValidateContent("", 10), ErrContentRequired)
	assert.ErrorIs(t, ValidateContent(strings.Repeat("가", 11), 10), ErrContentTooLong)
	assert.ErrorIs(t, ValidateContent("", 10), ErrInvalid)
}

func TestUsername(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  @Alice "))

	valid := []string{"alice", "a_b.c", "user123", strings.Repeat("a", 30)}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{"", "ab", "Alice", "with space", "dot.", ".dot", "a..b", "한글이름", strings.Repeat("a", 31)}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateUsername(u), ErrUsernameInvalid, u)
	}

	assert.ErrorIs(t, ValidateUsername("admin"), ErrUsernameReserved)
	assert.ErrorIs(t, ValidateUsername("me"), ErrUsernameInvalid)
}

func TestValidateDisplayName(t *testing.T) {
	assert.NoError(t, ValidateDisplayName(strings.Repeat("이", 50)))
	assert.ErrorIs(t, ValidateDisplayName(strings.Repeat("이", 51)), ErrDisplayNameTooLong)
}

func TestProfileFields(t *testing.T) {
	assert.NoError(t, ValidateBio(strings.Repeat("あ", MaxBioLength)))
	assert.ErrorIs(t, ValidateBio(strings.Repeat("あ", MaxBioLength+1)), ErrBioTooLong)

	assert.NoError(t, ValidateSignatureColor("#a1B2c3"))
	for _, c := range []string{"", "a1b2c3", "#abc", "#gggggg", "#a1b2c3d4"} {
		assert.ErrorIs(t, ValidateSignatureColor(c), ErrInvalidSignatureColor, c)
	}

	assert.NoError(t, ValidateAvatarURL(""))
	assert.NoError(t, ValidateAvatarURL("https://img.clerk.com/abc"))
	assert.ErrorIs(t, ValidateAvatarURL("http://img.clerk.com/abc"), ErrInvalidAvatarURL)
	assert.ErrorIs(t, ValidateAvatarURL("javascript:alert(1)"), ErrInvalidAvatarURL)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("someone@example.com"))
	for _, e := range []string{"", "not-an-email", "Someone <someone@example.com>", strings.Repeat("a", 250) + "@x.io"} {
		assert.ErrorIs(t, ValidateEmail(e), ErrInvalidEmail, e)
	}
}
