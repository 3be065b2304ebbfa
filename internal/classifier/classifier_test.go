package classifier

import (
	"strings"
	"testing"
)

func padTo(base string, n int) string {
	var b strings.Builder
	b.WriteString(base)
	for b.Len() < n {
		b.WriteString(" lorem ipsum dolor sit amet")
	}
	return b.String()
}

func TestLooksLikeJobOffer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "short text with many keywords",
			text: "requisitos experiencia salario vacante beneficios",
			want: false,
		},
		{
			name: "long text with two keywords",
			text: padTo("Buscamos perfil con requisitos claros y salario competitivo.", 150),
			want: true,
		},
		{
			name: "long text with single keyword repeated",
			text: padTo("salario salario salario salario salario", 150),
			want: false,
		},
		{
			name: "long text with no keywords",
			text: padTo("texto genérico sin vocabulario de ofertas", 150),
			want: false,
		},
		{
			name: "keywords matched case-insensitively",
			text: padTo("REQUISITOS del puesto y SALARIO a convenir", 150),
			want: true,
		},
		{
			name: "empty string",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeJobOffer(tt.text); got != tt.want {
				t.Errorf("LooksLikeJobOffer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsExternalLink(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"visit https://x.io", true},
		{"visit http://x.io", true},
		{"visit www.x.io", true},
		{"Visit WWW.X.IO", true},
		{"HTTPS://upper.case", true},
		{"no links here", false},
		{"", false},
		{"awww. that is not a link", false},
	}

	for _, tt := range tests {
		if got := ContainsExternalLink(tt.text); got != tt.want {
			t.Errorf("ContainsExternalLink(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestValidateAnalyzerInputRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{
			name:    "empty input",
			text:    "",
			wantMsg: MsgEmptyInput,
		},
		{
			name:    "whitespace only is empty",
			text:    "   \n\t  ",
			wantMsg: MsgEmptyInput,
		},
		{
			name:    "link wins over length",
			text:    "mira https://jobs.example.com/123",
			wantMsg: MsgLinkDetected,
		},
		{
			name:    "short text without link",
			text:    "oferta de trabajo corta con requisitos",
			wantMsg: MsgTooShort,
		},
		{
			name:    "long text without tech vocabulary",
			text:    padTo("una descripción muy larga que no menciona nada técnico en absoluto", 260),
			wantMsg: MsgNotTechOffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAnalyzerInput(tt.text)
			if got.IsValid {
				t.Fatalf("ValidateAnalyzerInput(%q) valid, want invalid", tt.text)
			}
			if got.ErrorMessage != tt.wantMsg {
				t.Errorf("ErrorMessage = %q, want %q", got.ErrorMessage, tt.wantMsg)
			}
		})
	}
}

func TestValidateAnalyzerInputValid(t *testing.T) {
	text := padTo("Buscamos desarrollador backend con experiencia en Go. El stack incluye Postgres y Redis.", 200)

	got := ValidateAnalyzerInput(text)
	if !got.IsValid {
		t.Fatalf("ValidateAnalyzerInput() invalid: %q", got.ErrorMessage)
	}
	if got.ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want empty", got.ErrorMessage)
	}
}
