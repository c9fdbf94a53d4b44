package papertrade

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty object",
			build: func(w *jsonObjectWriter) {},
			want:  `{}`,
		},
		{
			name: "keys keep their order",
			build: func(w *jsonObjectWriter) {
				w.Append("z", 1).Append("a", "hello")
			},
			want: `{"z":1,"a":"hello"}`,
		},
		{
			name: "optional fields",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 0) // a zero value is written by Append
				w.Optional("b", "")
				w.Optional("c", 0)
				w.Optional("d", "hello")
			},
			want: `{"a":0,"d":"hello"}`,
		},
		{
			name: "embed from",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 1)
				w.EmbedFrom(struct {
					C int    `json:"c"`
					D string `json:"d"`
				}{C: 3, D: "hello"})
				w.Append("b", 2)
			},
			want: `{"a":1,"c":3,"d":"hello","b":2}`,
		},
		{
			name: "embed an empty object",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 1)
				w.EmbedFrom(struct{}{})
			},
			want: `{"a":1}`,
		},
		{
			name: "embed money",
			build: func(w *jsonObjectWriter) {
				w.Append("command", CmdCash)
				w.EmbedFrom(M(8500.5, "USD"))
			},
			want: `{"command":"cash","amount":8500.5,"currency":"USD"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var w jsonObjectWriter
			tc.build(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestJsonObjectWriter_Errors(t *testing.T) {
	tests := map[string]func(w *jsonObjectWriter){
		"unsupported value": func(w *jsonObjectWriter) { w.Append("f", func() {}) },
		"embed a non object": func(w *jsonObjectWriter) { w.EmbedFrom([]int{1}) },
		"error sticks": func(w *jsonObjectWriter) {
			w.Append("c", make(chan int))
			w.Append("a", 1)
		},
	}
	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			var w jsonObjectWriter
			build(&w)
			if got, err := w.MarshalJSON(); err == nil {
				t.Errorf("MarshalJSON() = %s, want an error", got)
			}
		})
	}
}
