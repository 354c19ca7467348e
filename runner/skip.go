package runner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// SkipError lists the repositories that couldn't be read.
type SkipError struct {
	Repos []string
	errs  *multierror.Error
}

// add is safe to call on a nil receiver.
func (se *SkipError) add(repo string, err error) *SkipError {
	if se == nil {
		se = &SkipError{}
	}
	se.Repos = append(se.Repos, repo)
	se.errs = multierror.Append(se.errs, fmt.Errorf("%s: %w", repo, err))
	return se
}

func (se *SkipError) Error() string {
	return fmt.Sprintf("%d repositories skipped", len(se.Repos))
}

func (se *SkipError) Unwrap() error {
	if se.errs == nil {
		return nil
	}
	return se.errs.ErrorOrNil()
}

// Errors returns the error for each skipped repository.
func (se *SkipError) Errors() []error {
	if se.errs == nil {
		return nil
	}
	return se.errs.Errors
}

// WriteFailure writes one line per skipped repository.
func (se *SkipError) WriteFailure(w io.Writer) error {
	if se == nil || len(se.Repos) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%s:\n", se.Error()))
	for _, err := range se.Errors() {
		bw.WriteString(fmt.Sprintf("  %v\n", err))
	}
	return bw.Flush()
}
