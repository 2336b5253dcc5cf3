package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates the referenced image file does not exist in
// the configured directory. Callers render a textual placeholder.
var ErrNotFound = errors.New("image not found")

// Library resolves question and answer image references against the
// local static directories that mirror the backend's image store.
type Library struct {
	questionsDir string
	answersDir   string
}

// NewLibrary creates a Library over the given directories.
func NewLibrary(questionsDir, answersDir string) *Library {
	return &Library{
		questionsDir: questionsDir,
		answersDir:   answersDir,
	}
}

// QuestionPath resolves a question image reference to an absolute path.
func (l *Library) QuestionPath(ref string) (string, error) {
	return resolve(l.questionsDir, ref)
}

// AnswerPath resolves an answer image reference to an absolute path.
func (l *Library) AnswerPath(ref string) (string, error) {
	return resolve(l.answersDir, ref)
}

// resolve joins ref onto dir and stats the result. Only the base name
// of ref is used, so references cannot escape the directory.
func resolve(dir, ref string) (string, error) {
	name := filepath.Base(filepath.Clean(ref))
	if name == "." || name == string(filepath.Separator) || ref == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	path := filepath.Join(dir, name)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}

	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return abs, nil
}
