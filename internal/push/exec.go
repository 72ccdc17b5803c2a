package push

import (
	"bytes"
	"context"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
)

// SPDYExecutor runs commands in a pod container through the Kubernetes exec
// subresource.
type SPDYExecutor struct {
	Config    *rest.Config
	Clientset kubernetes.Interface

	Namespace string
	Pod       string
	Container string
}

// Exec implements Executor.
func (e *SPDYExecutor) Exec(ctx context.Context, command []string, stdin io.Reader) error {
	req := e.Clientset.CoreV1().RESTClient().
		Post().
		Resource("pods").
		Namespace(e.Namespace).
		Name(e.Pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: e.Container,
			Command:   command,
			Stdin:     stdin != nil,
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(e.Config, "POST", req.URL())
	if err != nil {
		return fmt.Errorf("failed to create exec transport for pod %s/%s: %w", e.Namespace, e.Pod, err)
	}

	var stdout, stderr bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdin:  stdin,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return fmt.Errorf("exec in pod %s/%s failed: %w (stderr: %s)", e.Namespace, e.Pod, err, stderr.String())
	}
	return nil
}
