// Package accountfile parses the line-oriented account files fed to the
// batch importer: one "username password" pair per line, fields split on
// whitespace and/or commas, #-prefixed comment lines and blank lines
// skipped. Bad lines are reported with their line number and reason so the
// importer can log and continue.
package accountfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lessonhub-app/lessonhub/internal/app/system/loginid"
)

// Account is one validated username/password pair.
type Account struct {
	Username string
	Password string
}

// LineError describes one rejected line.
type LineError struct {
	Line   int
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result holds accepted accounts and per-line rejections.
type Result struct {
	Accounts []Account
	Errors   []LineError
}

// Parse reads the whole account file. It never fails on content: malformed
// lines land in Result.Errors and parsing continues. Only a read error on
// the underlying reader is returned.
func Parse(r io.Reader) (Result, error) {
	var res Result

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitFields(line)
		if len(fields) != 2 {
			res.Errors = append(res.Errors, LineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected 2 fields (username, password), got %d", len(fields)),
			})
			continue
		}

		username, password := fields[0], fields[1]
		if !loginid.ValidUsername(username) {
			res.Errors = append(res.Errors, LineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid username %q (allowed: letters, digits, underscore)", username),
			})
			continue
		}
		if !loginid.ValidSecret(password) {
			res.Errors = append(res.Errors, LineError{
				Line:   lineNo,
				Reason: fmt.Sprintf("password for %q is shorter than %d characters", username, loginid.MinSecretLen),
			})
			continue
		}

		res.Accounts = append(res.Accounts, Account{Username: username, Password: password})
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading account file: %w", err)
	}
	return res, nil
}

// splitFields splits a line on any run of whitespace and/or commas.
func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
