package translate

import (
	"strings"
	"unicode"
)

// systemPrompt is sent as the system message with every request.
const systemPrompt = "당신은 전문 번역가입니다. 영문 키값은 스네이크 케이스로 작성하고, " +
	"특수문자나 공백 없이 영문 소문자만 사용해주세요."

const promptTemplate = `다음 한국어 단어를 영어로 번역하고, 영문 키값과 아랍어 번역을 제공해주세요.
각 줄마다 다음과 같은 형식으로 응답해주세요:

한국어: [한국어 단어]
영어: [영어 번역]
영문 키값: [스네이크 케이스로 된 영문 키]
아랍어: [아랍어 번역]

예시:
한국어: 안녕하세요
영어: Hello
영문 키값: hello
아랍어: مرحبا

한국어 단어: {ko}
{description}`

// Reply line prefixes.
const (
	prefixEnglish = "영어:"
	prefixKey     = "영문 키값:"
	prefixArabic  = "아랍어:"
)

// Prompt builds the user message for req.
func Prompt(req Request) string {
	desc := ""
	if req.Description != "" {
		desc = "설명: " + req.Description
	}
	return strings.NewReplacer("{ko}", req.Korean, "{description}", desc).Replace(promptTemplate)
}

// Parse extracts the translation from a reply. Lines are matched by
// prefix; unknown lines are ignored.
func Parse(reply string) Result {
	var res Result
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		switch {
		case strings.HasPrefix(line, prefixEnglish):
			res.English = strings.TrimSpace(strings.TrimPrefix(line, prefixEnglish))
		case strings.HasPrefix(line, prefixKey):
			res.Key = strings.TrimSpace(strings.TrimPrefix(line, prefixKey))
		case strings.HasPrefix(line, prefixArabic):
			res.Arabic = strings.TrimSpace(strings.TrimPrefix(line, prefixArabic))
		}
	}
	return res
}

// SnakeKey converts text to a lower-case snake_case key. Anything other
// than ASCII letters and digits becomes a single underscore.
func SnakeKey(text string) string {
	var b strings.Builder
	pending := false
	for _, r := range text {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}
