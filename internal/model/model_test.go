package model

import "testing"

func TestStatusPending(t *testing.T) {
	for id := StatusPD; id <= StatusEFE; id++ {
		if got, want := id.Pending(), id <= 2; got != want {
			t.Errorf("%d (%s).Pending() = %v, want %v", id, id, got, want)
		}
	}
	if StatusId(42).String() != "Unknown" {
		t.Error("unexpected description for unknown status")
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("toggle must flip light and dark")
	}
}

func TestLanguageExecutable(t *testing.T) {
	if (Language{Name: "html"}).Executable() {
		t.Error("language without judge id must not be executable")
	}
	if !(Language{Name: "c", JudgeID: 50}).Executable() {
		t.Error("c must be executable")
	}
}
