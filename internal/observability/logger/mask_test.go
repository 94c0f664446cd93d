package logger

import (
	"net/http"
	"testing"
)

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{
		"Authorization": []string{"Bearer abcdef1234"},
		"Cookie":        []string{"session=abcdef1234"},
		"X-Shop-Id":     []string{"42"},
	}
	masked := MaskHeaders(headers)
	if masked["Authorization"] != "Bearer ****1234" {
		t.Fatalf("expected masked authorization, got %q", masked["Authorization"])
	}
	if masked["Cookie"] != "****" {
		t.Fatalf("expected masked cookie, got %q", masked["Cookie"])
	}
	if masked["X-Shop-Id"] != "42" {
		t.Fatalf("expected shop header untouched, got %q", masked["X-Shop-Id"])
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"customer": "Jordan",
		"nested": map[string]any{
			"api_key": "key_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["customer"] != "Jordan" {
		t.Fatalf("expected customer untouched, got %v", masked["customer"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["api_key"] != "****5678" {
		t.Fatalf("expected masked api_key, got %v", nested["api_key"])
	}
}
