package utils_test

import (
	"codepad-server/utils"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestYamlRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := sample{Name: "codepad", Count: 3}
	if err := utils.WriteYaml(&in, path); err != nil {
		t.Fatalf("WriteYaml: %v", err)
	}
	exists, err := utils.IsFileExists(path)
	if err != nil || !exists {
		t.Fatalf("expected %s to exist, got %v, %v", path, exists, err)
	}
	var out sample
	if err := utils.ReadYaml(&out, path); err != nil {
		t.Fatalf("ReadYaml: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestIsFileExistsMissing(t *testing.T) {
	exists, err := utils.IsFileExists(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("missing file reported as existing")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"out", "err", "none"}, "out"},
		{[]string{"", "err", "none"}, "err"},
		{[]string{"", "", "none"}, "none"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := utils.FirstNonEmpty(c.in...); got != c.want {
			t.Errorf("FirstNonEmpty(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
