package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]string{
		"  Visa Filed  ":                        "Visa Filed",
		"<b>Docs</b> Submitted":                 "Docs Submitted",
		"&lt;script&gt;alert(1)&lt;/script&gt;": "alert(1)",
		"Entre\u0301e":                         "Entr\u00e9e",
	}

	for in, want := range cases {
		if got := Text(in); got != want {
			t.Errorf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNoteKeepsInnerNewlines(t *testing.T) {
	got := Note("Awaiting transcript  \r\nFollow up Monday\t\r\n")
	want := "Awaiting transcript\nFollow up Monday"
	if got != want {
		t.Fatalf("Note() = %q, want %q", got, want)
	}
}

func TestNoteKeepsAngleBrackets(t *testing.T) {
	cases := map[string]string{
		"IELTS <6.5, >6.0":        "IELTS <6.5, >6.0",
		"<b>bring originals</b>":  "<b>bring originals</b>",
		"fee &lt; 200":            "fee &lt; 200",
		"Entre\u0301e  \r\n<tbd>": "Entr\u00e9e\n<tbd>",
	}

	for in, want := range cases {
		if got := Note(in); got != want {
			t.Errorf("Note(%q) = %q, want %q", in, got, want)
		}
	}
}
