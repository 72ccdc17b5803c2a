package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func forbiddenErr() error {
	return apierrors.NewForbidden(
		schema.GroupResource{Group: "rbac.authorization.k8s.io", Resource: "clusterroles"},
		"", errors.New("access denied"))
}

func TestWrapAPIClassifiesForbiddenAsAuth(t *testing.T) {
	err := WrapAPI(forbiddenErr())

	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if IsAPI(err) {
		t.Fatalf("forbidden must not classify as generic API error, got %v", err)
	}
}

func TestWrapAPIPreservesStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int32
	}{
		{"not found", apierrors.NewNotFound(schema.GroupResource{Resource: "services"}, "spgwu-dp-comm"), 404},
		{"forbidden", forbiddenErr(), 403},
		{"conflict", apierrors.NewConflict(schema.GroupResource{Resource: "statefulsets"}, "spgwc", errors.New("stale")), 409},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapAPI(fmt.Errorf("request failed: %w", tt.err))
			if got := StatusCode(wrapped); got != tt.want {
				t.Fatalf("expected status code %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWrapIONamesFailingFile(t *testing.T) {
	err := WrapIO("spgwc-run.sh", errors.New("connection reset"))

	if !IsIO(err) {
		t.Fatalf("expected IO error, got %v", err)
	}
	if want := `"spgwc-run.sh"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to name the file, got %q", err.Error())
	}
}

func TestNilErrorsAreNotWrapped(t *testing.T) {
	if WrapConfig(nil) != nil || WrapAuth(nil) != nil || WrapAPI(nil) != nil || WrapIO("x", nil) != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestStatusCodeWithoutAPIStatus(t *testing.T) {
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Fatalf("expected 0 for non-API error, got %d", got)
	}
}
