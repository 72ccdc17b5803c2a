package logging

import (
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
)

func TestLogAuditEventCarriesTagAndFields(t *testing.T) {
	var lines []string
	logger := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	LogAuditEvent(logger, EventFilePushed, map[string]string{
		"file": "spgwc-run.sh",
		"dest": "/opt/cp/scripts/spgwc-run.sh",
	})

	if len(lines) != 1 {
		t.Fatalf("expected one audit line, got %d", len(lines))
	}
	for _, want := range []string{
		`"audit"="true"`,
		`"event_type"="file_pushed"`,
		`"file"="spgwc-run.sh"`,
		`"dest"="/opt/cp/scripts/spgwc-run.sh"`,
	} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("audit line %q missing %q", lines[0], want)
		}
	}
}
