package stripper

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stripTest struct {
	name       string
	input      string
	keepIndent bool
	output     string
}

var stripTests = []stripTest{
	{
		"no comment",
		"a b\nc\n",
		false,
		"a b\nc\n",
	},
	{
		"comment to end of line",
		"a %x y\nb\n",
		false,
		"a b\n",
	},
	{
		"whole-line comment",
		"% heading\ntext\n",
		false,
		"text\n",
	},
	{
		"escaped percent kept",
		"100\\% sure\n",
		false,
		"100\\% sure\n",
	},
	{
		"indent after comment stripped",
		"a%c\n   b\n",
		false,
		"ab\n",
	},
	{
		"indent after comment kept",
		"a%c\n   b\n",
		true,
		"a   b\n",
	},
	{
		"tabs count as indent",
		"a%c\n\t\tb\n",
		false,
		"ab\n",
	},
	{
		"comment at end of file",
		"a%ccc",
		false,
		"a",
	},
	{
		"comment line then eof",
		"a%ccc\n",
		false,
		"a",
	},
	{
		"consecutive comments",
		"x%1\ny%2\nz\n",
		false,
		"xyz\n",
	},
	{
		"percent inside later line",
		"keep\nthis % not that\nend\n",
		false,
		"keep\nthis end\n",
	},
}

func TestStrip(t *testing.T) {
	for _, tt := range stripTests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.KeepIndent = tt.keepIndent
			got, err := s.Strip(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("strip error: %v", err)
			}
			if diff := cmp.Diff(tt.output, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mex")
	if err := os.WriteFile(path, []byte("hello %comment\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	got, err := s.Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if diff := cmp.Diff("hello world\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Load(filepath.Join(dir, "missing.mex"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v; want fs.ErrNotExist", err)
	}
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.mex")
	second := filepath.Join(dir, "second.mex")
	if err := os.WriteFile(first, []byte("one %x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	got, err := s.ReadAll([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if diff := cmp.Diff("one two\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadAllStdin(t *testing.T) {
	s := New()
	got, err := s.ReadAll(nil, strings.NewReader("from stdin %c\nok\n"))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if diff := cmp.Diff("from stdin ok\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
