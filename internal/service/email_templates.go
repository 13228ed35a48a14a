package service

import (
	"fmt"

	"github.com/askbox/askbox/internal/language"
)

func newQuestionEmailTemplate(locale, name, inboxURL, appName string) (string, string) {
	switch locale {
	case language.English:
		if name == "" {
			name = "there"
		}
		subject := fmt.Sprintf("You have a new question on %s", appName)
		body := fmt.Sprintf(`Hi %s,

Someone just asked you a question. Answer or decline it from your inbox:
%s

You can turn these emails off in Settings.

The %s Team`, name, inboxURL, appName)
		return subject, body

	case language.Japanese:
		greeting := "こんにちは。"
		if name != "" {
			greeting = name + "さん"
		}
		subject := fmt.Sprintf("%sに新しい質問が届きました", appName)
		body := fmt.Sprintf(`%s

新しい質問が届きました。受信箱から回答または拒否できます:
%s

このメールは設定から停止できます。

%s`, greeting, inboxURL, appName)
		return subject, body

	default:
		greeting := "안녕하세요,"
		if name != "" {
			greeting = name + "님,"
		}
		subject := fmt.Sprintf("%s에 새 질문이 도착했어요", appName)
		body := fmt.Sprintf(`%s

새 질문이 도착했어요. 받은 질문함에서 답변하거나 거절할 수 있어요:
%s

이 알림은 설정에서 끌 수 있어요.

%s`, greeting, inboxURL, appName)
		return subject, body
	}
}
