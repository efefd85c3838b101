// Package stripper removes % line comments from macro source text and
// loads files for the expansion engine. It runs once over raw input
// before expansion begins; the engine itself never sees a comment.
package stripper

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/nickwells/filecheck.mod/filecheck"
)

// Stripper holds the comment-stripping configuration. An unescaped %
// (previous byte not a backslash) starts a comment running through the
// end of the line; the newline and, unless KeepIndent is set, the
// leading blanks and tabs of the following line are removed with it.
// The same rules apply to top-level sources and to \include targets.
type Stripper struct {
	// KeepIndent preserves leading blanks/tabs on the line after a
	// stripped comment.
	KeepIndent bool
}

func New() *Stripper {
	return &Stripper{}
}

// Strip copies r with comments removed.
func (s *Stripper) Strip(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var out strings.Builder
	var prev byte
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if c == '%' && prev != '\\' {
			if err := s.skipComment(br); err != nil {
				if err == io.EOF {
					break
				}
				return "", err
			}
			prev = 0
			continue
		}
		out.WriteByte(c)
		prev = c
	}
	return out.String(), nil
}

// skipComment consumes through the end of the line and the indent that
// follows it.
func (s *Stripper) skipComment(br *bufio.Reader) error {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			break
		}
	}
	if s.KeepIndent {
		return nil
	}
	for {
		c, err := br.ReadByte()
		if err != nil {
			return err
		}
		if c != ' ' && c != '\t' {
			return br.UnreadByte()
		}
	}
}

var mustExist = filecheck.Provisos{Existence: filecheck.MustExist}

// Load reads and comment-strips the file at path. It satisfies the
// expansion engine's Loader interface, so \include goes through here.
func (s *Stripper) Load(path string) (string, error) {
	if err := mustExist.StatusCheck(path); err != nil {
		return "", fmt.Errorf("cannot open file %q: %w: %s", path, fs.ErrNotExist, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Strip(f)
}

// ReadAll loads every named source, stripping comments from each
// independently, and concatenates them in argument order. With no paths
// it strips stdin instead.
func (s *Stripper) ReadAll(paths []string, stdin io.Reader) (string, error) {
	if len(paths) == 0 {
		return s.Strip(stdin)
	}
	var out strings.Builder
	for _, path := range paths {
		text, err := s.Load(path)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}
