package changelog

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// MissingFileError is returned in update mode when the changelog to
// prepend into does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("the provided changelog file %s does not exist", e.Path)
}

// FileName is the name used for a freshly created changelog.
func FileName(owner, repo string, milestoneNumber int) string {
	return fmt.Sprintf("%s_%s_changelog.%d.md", owner, repo, milestoneNumber)
}

// WriteNew writes the document to a fresh per-milestone file and returns
// its name.
func WriteNew(owner, repo string, milestoneNumber int, lines []string) (string, error) {
	name := FileName(owner, repo, milestoneNumber)
	if err := os.WriteFile(name, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Update prepends the document into an existing changelog file. The first
// line of the existing file stays on top, since it most likely holds the
// title; the pre-update content is preserved byte-for-byte in a .bak
// backup. Returns the backup file name.
func Update(name string, lines []string) (string, error) {
	original, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingFileError{Path: name}
		}
		return "", err
	}

	backup := name + ".bak"
	if err := os.Rename(name, backup); err != nil {
		return "", err
	}

	first, rest := splitFirstLine(original)
	var buf bytes.Buffer
	buf.Write(first)
	buf.WriteByte('\n')
	buf.WriteString(strings.Join(lines, "\n"))
	buf.WriteByte('\n')
	buf.Write(rest)

	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return backup, nil
}

// splitFirstLine splits content after the first newline, terminating the
// first line when the file consisted of a single unterminated one.
func splitFirstLine(content []byte) (first, rest []byte) {
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		return content[:i+1], content[i+1:]
	}
	return append(append([]byte{}, content...), '\n'), nil
}
