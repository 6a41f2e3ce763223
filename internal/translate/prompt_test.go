package translate

import (
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	p := Prompt(Request{Korean: "사과"})
	if !strings.Contains(p, "한국어 단어: 사과") {
		t.Errorf("prompt missing word:\n%s", p)
	}
	if strings.Contains(p, "설명:") || strings.Contains(p, "{description}") {
		t.Errorf("prompt has description line without description:\n%s", p)
	}

	p = Prompt(Request{Korean: "배", Description: "과일"})
	if !strings.HasSuffix(p, "설명: 과일") {
		t.Errorf("prompt missing description:\n%s", p)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Result
	}{
		{
			name:  "full",
			reply: "한국어: 사과\n영어: Apple\n영문 키값: apple\n아랍어: تفاحة",
			want:  Result{English: "Apple", Key: "apple", Arabic: "تفاحة"},
		},
		{
			name:  "bulleted with padding",
			reply: "- 영어:  Pear \n- 아랍어: كمثرى\n",
			want:  Result{English: "Pear", Arabic: "كمثرى"},
		},
		{
			name:  "crlf",
			reply: "영어: Hello\r\n영문 키값: hello\r\n",
			want:  Result{English: "Hello", Key: "hello"},
		},
		{
			name:  "nothing recognisable",
			reply: "I cannot help with that.",
			want:  Result{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.reply); got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnakeKey(t *testing.T) {
	tests := map[string]string{
		"Hello":             "hello",
		"Good Morning":      "good_morning",
		"  spaced  out  ":   "spaced_out",
		"already_snake":     "already_snake",
		"Don't stop!":       "don_t_stop",
		"Route 66":          "route_66",
		"사과":                "",
		"café au lait":      "caf_au_lait",
		"--leading-dashes-": "leading_dashes",
	}
	for in, want := range tests {
		if got := SnakeKey(in); got != want {
			t.Errorf("SnakeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
