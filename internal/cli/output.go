package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mmr-tortoise/cutrelease/internal/release"
)

// printSession outputs a finished release in text or JSON format.
func printSession(w io.Writer, s *release.Session) {
	if IsJSONOutput() {
		printJSON(w, s)
		return
	}

	fmt.Fprintf(w, "Released %s\n", s.Tag)
	fmt.Fprintf(w, "  Previous version: %s\n", s.Previous)
	fmt.Fprintf(w, "  Release branch:   %s\n", s.ReleaseBranch)
	if s.TrunkAdvanced {
		fmt.Fprintln(w, "  Merged into trunk")
	}
	fmt.Fprintf(w, "  Pushed:           %s\n", formatRefs(s.Pushed))
	fmt.Fprintf(w, "  Checked out:      %s\n", s.OriginalBranch)
}

// printPlan outputs the result of a dry run in text or JSON format.
func printPlan(w io.Writer, s *release.Session) {
	if IsJSONOutput() {
		printJSON(w, s)
		return
	}

	fmt.Fprintf(w, "Next %s release: %s\n", s.Intent.Label(), s.Next)
	fmt.Fprintf(w, "  Previous version: %s\n", s.Previous)
	fmt.Fprintf(w, "  Release branch:   %s\n", s.ReleaseBranch)
	fmt.Fprintf(w, "  Tag:              %s\n", s.Tag)
	if s.PreRelease {
		fmt.Fprintln(w, "  Pre-release: trunk is neither merged nor pushed")
	}
}

func printJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// formatRefs joins refs for display, or "-" when there are none.
func formatRefs(refs []string) string {
	if len(refs) == 0 {
		return "-"
	}
	return strings.Join(refs, ", ")
}
