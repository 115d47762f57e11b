// Package handlers contains the execution logic behind the CLI commands.
package handlers

import (
	"fmt"
	"strings"
)

// supportPointer is appended to every fatal error before the process exits.
const supportPointer = "For help, see https://github.com/PowerPress/npk/wiki/Troubleshooting"

// hinter is implemented by errors that carry an actionable remediation hint.
type hinter interface {
	Remediation() string
}

// FormatError renders a fatal error for the terminal: the error itself, its
// remediation hint when it has one, and the support pointer.
func FormatError(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)

	var h hinter
	if ok := asHinter(err, &h); ok {
		fmt.Fprintf(&b, "\n%s\n", h.Remediation())
	}

	b.WriteString("\n" + supportPointer)
	return b.String()
}

// asHinter walks the error chain looking for a remediation hint.
func asHinter(err error, target *hinter) bool {
	for err != nil {
		if h, ok := err.(hinter); ok {
			*target = h
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
