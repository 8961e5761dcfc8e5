package validator

import "testing"

type stageRequest struct {
	Name string `json:"name" validate:"required,notblank,printable,max=100"`
}

func TestCustomTags(t *testing.T) {
	val := New()

	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"plain", "Visa Filed", true},
		{"blank", "   ", false},
		{"control", "Visa\x00Filed", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		err := val.Struct(stageRequest{Name: tc.input})
		if (err == nil) != tc.ok {
			t.Errorf("%s: expected ok=%v, got err=%v", tc.name, tc.ok, err)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	err := New().Struct(stageRequest{Name: "  "})

	fields := FieldErrors(err)
	if fields["Name"] != "notblank" {
		t.Fatalf("expected Name to fail notblank, got %v", fields)
	}
	if FieldErrors(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
