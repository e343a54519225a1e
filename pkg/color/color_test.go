package color

import "testing"

func TestDisabledColorIsPlain(t *testing.T) {
	saved := profile
	defer func() { profile = saved }()

	EnableColor(false)

	if IsColorEnabled() {
		t.Fatal("expected color to be disabled")
	}
	if got := RedText("boom"); got != "boom" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := Error("bad"); got != "Error: bad" {
		t.Errorf("expected plain error, got %q", got)
	}
	if got := Position(3, 7); got != "3:7" {
		t.Errorf("expected plain position, got %q", got)
	}
}

func TestEnabledColorWrapsText(t *testing.T) {
	saved := profile
	defer func() { profile = saved }()

	EnableColor(false)
	EnableColor(true)

	got := GreenText("ok")
	if got == "ok" {
		t.Errorf("expected escape sequences around %q", got)
	}
}
