package council

import "testing"

func TestExtractJSON(t *testing.T) {
	type reply struct {
		Thesis     string  `json:"thesis"`
		Confidence float64 `json:"confidence"`
	}

	cases := []struct {
		name string
		in   string
		ok   bool
		want reply
	}{
		{
			name: "bare object",
			in:   `{"thesis": "up", "confidence": 80}`,
			ok:   true,
			want: reply{Thesis: "up", Confidence: 80},
		},
		{
			name: "fenced json block",
			in:   "```json\n{\"thesis\": \"up\", \"confidence\": 80}\n```",
			ok:   true,
			want: reply{Thesis: "up", Confidence: 80},
		},
		{
			name: "plain fence",
			in:   "```\n{\"thesis\": \"up\", \"confidence\": 80}\n```",
			ok:   true,
			want: reply{Thesis: "up", Confidence: 80},
		},
		{
			name: "prose around the object",
			in:   `Here is my analysis: {"thesis": "up", "confidence": 80} as requested.`,
			ok:   true,
			want: reply{Thesis: "up", Confidence: 80},
		},
		{
			name: "no object at all",
			in:   "I cannot produce structured output for this request.",
			ok:   false,
		},
		{
			name: "malformed object",
			in:   `{"thesis": "up", "confidence":}`,
			ok:   false,
		},
		{
			name: "empty input",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got reply
			ok := ExtractJSON(tc.in, &got)
			if ok != tc.ok {
				t.Fatalf("ExtractJSON ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("parsed %+v, want %+v", got, tc.want)
			}
		})
	}
}
