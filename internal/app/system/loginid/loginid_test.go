package loginid

import "testing"

func TestSynthesizeEmailIsReversible(t *testing.T) {
	for _, u := range []string{"zhang_wei", "Amy", "a1"} {
		if got := UsernameFromEmail(SynthesizeEmail(u)); got != u {
			t.Errorf("round trip for %q gave %q", u, got)
		}
	}
}

func TestUsernameFromEmail_ForeignDomainUnchanged(t *testing.T) {
	if got := UsernameFromEmail("amy@example.com"); got != "amy@example.com" {
		t.Errorf("foreign-domain email must be returned whole, got %q", got)
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"amy", "zhang_wei", "A1_b2"}
	invalid := []string{"", "am y", "amy!", "李雷", "a-b"}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Errorf("ValidUsername(%q) = true, want false", u)
		}
	}
}

func TestValidSecret(t *testing.T) {
	if ValidSecret("12345") {
		t.Error("5-char secret must be rejected")
	}
	if !ValidSecret("123456") {
		t.Error("6-char secret must be accepted")
	}
}
