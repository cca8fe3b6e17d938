package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/spf13/pflag"
)

// sessionTypeFlag is a --session-type value restricted to known types.
type sessionTypeFlag domain.SessionType

var _ pflag.Value = (*sessionTypeFlag)(nil)

func (f *sessionTypeFlag) String() string { return string(*f) }

func (f *sessionTypeFlag) Set(v string) error {
	if !domain.ValidSessionTypes[domain.SessionType(v)] {
		return fmt.Errorf("unknown session type %q (want short, medium or long)", v)
	}
	*f = sessionTypeFlag(v)
	return nil
}

func (f *sessionTypeFlag) Type() string { return "session-type" }

// addRequestFileFlag registers the required --file flag shared by the
// request-driven commands.
func addRequestFileFlag(fs *pflag.FlagSet, dst *string) {
	fs.StringVarP(dst, "file", "f", "", "Request file (YAML or JSON, - for stdin)")
}
