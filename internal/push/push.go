// Package push writes static files into a running workload container over
// an exec transport. Pushes are idempotent overwrites; there is no diffing.
package push

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/go-logr/logr"

	"github.com/omec-project/spgw-operator/internal/bundle"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
	"github.com/omec-project/spgw-operator/internal/logging"
	"github.com/omec-project/spgw-operator/internal/metrics"
)

// Executor runs one command inside the workload container with the given
// stdin. The production implementation execs over SPDY; tests substitute a
// fake.
type Executor interface {
	Exec(ctx context.Context, command []string, stdin io.Reader) error
}

// Files writes every file of the bundle into destPath inside the container,
// creating parent directories as needed and setting the given permission
// bits. The first failing file aborts the remaining batch and is named in
// the returned error.
func Files(ctx context.Context, log logr.Logger, exec Executor, files bundle.Bundle, destPath string, mode fs.FileMode) error {
	for _, name := range files.Names() {
		target := path.Join(destPath, name)
		command := []string{
			"sh", "-c",
			fmt.Sprintf("mkdir -p %s && cat > %s && chmod %o %s", destPath, target, mode, target),
		}
		if err := exec.Exec(ctx, command, strings.NewReader(files[name])); err != nil {
			return operatorerrors.WrapIO(name, err)
		}
		metrics.RecordFilePushed()
		logging.LogAuditEvent(log, logging.EventFilePushed, map[string]string{
			"file": name, "dest": target,
		})
	}
	return nil
}
