package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/contract"
)

// FormatIssues lists errors first, then warnings. It returns "" when there
// is nothing to report.
func FormatIssues(errs, warnings []contract.Issue) string {
	if len(errs) == 0 && len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, is := range errs {
		b.WriteString(issueLine("✖", is))
	}
	for _, is := range warnings {
		b.WriteString(issueLine("!", is))
	}
	return b.String()
}

func issueLine(marker string, is contract.Issue) string {
	style := SeverityStyle(is.Severity)
	label := marker
	if is.Code != "" {
		label += " " + string(is.Code)
	}
	field := ""
	if is.Field != "" {
		field = Dim(is.Field+": ")
	}
	return fmt.Sprintf("  %s  %s%s\n", style.Render(label), field, is.Message)
}
