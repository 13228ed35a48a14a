package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuestionEmailTemplate(t *testing.T) {
	subject, body := newQuestionEmailTemplate("en", "", "https://askbox.test/inbox", "Askbox")
	assert.Equal(t, "You have a new question on Askbox", subject)
	assert.Contains(t, body, "Hi there,")
	assert.Contains(t, body, "https://askbox.test/inbox")

	subject, _ = newQuestionEmailTemplate("ja", "ユキ", "u", "Askbox")
	assert.Contains(t, subject, "新しい質問")

	subject, body = newQuestionEmailTemplate("", "민지", "u", "Askbox")
	assert.Contains(t, subject, "새 질문")
	assert.Contains(t, body, "민지님")
}

func TestNewQuestionEmailTemplateWithoutName(t *testing.T) {
	_, body := newQuestionEmailTemplate("ja", "", "u", "Askbox")
	assert.True(t, strings.HasPrefix(body, "こんにちは。\n"), body)
	assert.NotContains(t, body, "さん")

	_, body = newQuestionEmailTemplate("ko", "", "u", "Askbox")
	assert.True(t, strings.HasPrefix(body, "안녕하세요,\n"), body)
	assert.NotContains(t, body, "님,")
}

func TestEmailServiceDevModeOnlyLogs(t *testing.T) {
	s := NewEmailService("re_key", "noreply@askbox.test", "https://askbox.test", "Askbox", true)
	assert.NoError(t, s.SendNewQuestionEmail(context.Background(), "a@b.test", "A", "en"))
}

func TestEmailServiceUnconfigured(t *testing.T) {
	s := NewEmailService("", "noreply@askbox.test", "https://askbox.test", "Askbox", false)
	assert.Error(t, s.SendNewQuestionEmail(context.Background(), "a@b.test", "A", "en"))
}
