package pathutil_test

import (
	"sort"
	"testing"

	"github.com/nabbar/arcvfs/pathutil"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"/":              "/",
		"a/b":            "a/b",
		"/a/b/":          "a/b",
		"a\\b\\c":        "a/b/c",
		"a//b///c":       "a/b/c",
		"a/b/":           "a/b",
		"/a":             "a",
	}
	for in, want := range cases {
		if got := pathutil.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoin(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"", "b", "b"},
		{"a", "", "a"},
		{"a", "b", "a/b"},
		{"a/", "/b", "a/b"},
	}
	for _, c := range cases {
		if got := pathutil.Join(c.a, c.b); got != c.want {
			t.Errorf("Join(%q,%q) = %q, want %q", c.a, c.b, got, c.want)
		}
	}
}

func TestSplitComponents(t *testing.T) {
	if got := pathutil.SplitComponents(""); got != nil {
		t.Errorf("SplitComponents(\"\") = %v, want nil", got)
	}
	got := pathutil.SplitComponents("a/b/c")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParentAndBase(t *testing.T) {
	if got := pathutil.Parent("a/b/c"); got != "a/b" {
		t.Errorf("Parent = %q", got)
	}
	if got := pathutil.Parent("a"); got != "" {
		t.Errorf("Parent(top-level) = %q, want \"\"", got)
	}
	if got := pathutil.Base("a/b/c"); got != "c" {
		t.Errorf("Base = %q", got)
	}
}

func TestPrefixes(t *testing.T) {
	got := pathutil.Prefixes("a/b/c")
	want := []string{"a", "a/b", "a/b/c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prefix %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNaturalSort(t *testing.T) {
	in := []string{"file10.txt", "file2.txt", "File1.txt", "b.txt", "a.txt"}
	sort.Slice(in, func(i, j int) bool { return pathutil.Less(in[i], in[j]) })
	want := []string{"a.txt", "b.txt", "File1.txt", "file2.txt", "file10.txt"}
	for i := range want {
		if in[i] != want[i] {
			t.Errorf("position %d = %q, want %q (got order %v)", i, in[i], want[i], in)
			break
		}
	}
}
