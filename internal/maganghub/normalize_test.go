package maganghub

import (
	"encoding/json"
	"testing"
)

func unmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

func TestNormalizeTitles(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "N/A"},
		{"plain string", "S1 Informatika", "S1 Informatika"},
		{"json array", `[{"title":"S1"},{"title":"D3"}]`, "S1, D3"},
		{"single entry", `[{"title":"SMA/SMK"}]`, "SMA/SMK"},
		{"malformed json", `[{"title":`, `[{"title":`},
		{"array without titles", `[{"name":"x"}]`, "N/A"},
		{"empty array", `[]`, "N/A"},
		{"whitespace only", "   ", "N/A"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeTitles(tc.in); got != tc.want {
				t.Fatalf("normalizeTitles(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "just text", "just text"},
		{"tags", "<p>Magang <b>IT</b> support</p>", "Magang IT support"},
		{"whitespace collapsed", "a\n\n  b", "a b"},
		{"nested", "<div><ul><li>satu</li><li>dua</li></ul></div>", "satu dua"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripHTML(tc.in); got != tc.want {
				t.Fatalf("stripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFlexID(t *testing.T) {
	var item vacancyItem
	if err := unmarshal(`{"id_posisi": 12345}`, &item); err != nil {
		t.Fatalf("numeric id: %v", err)
	}
	if item.IDPosisi.String() != "12345" {
		t.Fatalf("numeric id = %q, want 12345", item.IDPosisi)
	}

	if err := unmarshal(`{"id_posisi": "abc-1"}`, &item); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if item.IDPosisi.String() != "abc-1" {
		t.Fatalf("string id = %q, want abc-1", item.IDPosisi)
	}
}
