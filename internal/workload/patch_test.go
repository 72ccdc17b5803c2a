package workload

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

func TestEnvPatchMatchesIsStructural(t *testing.T) {
	patch := EnvPatch{
		Name:            "MME_ADDR",
		ConfigMapKeyRef: &ConfigMapKeyRef{Name: "mme-ip", Key: "IP"},
	}

	tests := []struct {
		name string
		env  corev1.EnvVar
		want bool
	}{
		{
			name: "identical source",
			env: corev1.EnvVar{
				Name: "MME_ADDR",
				ValueFrom: &corev1.EnvVarSource{
					ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{Name: "mme-ip"},
						Key:                  "IP",
					},
				},
			},
			want: true,
		},
		{
			name: "same name, literal value",
			env:  corev1.EnvVar{Name: "MME_ADDR", Value: "10.0.0.1"},
			want: false,
		},
		{
			name: "same name, different key",
			env: corev1.EnvVar{
				Name: "MME_ADDR",
				ValueFrom: &corev1.EnvVarSource{
					ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{Name: "mme-ip"},
						Key:                  "ADDR",
					},
				},
			},
			want: false,
		},
		{
			name: "different name",
			env:  corev1.EnvVar{Name: "POD_IP"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := patch.Matches(tt.env); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvPatchResourceFieldDivisor(t *testing.T) {
	patch := EnvPatch{
		Name: "MEM_LIMIT",
		ResourceFieldRef: &ResourceFieldRef{
			ContainerName: "spgwu",
			Resource:      "limits.memory",
			Divisor:       "1Mi",
		},
	}

	v := patch.EnvVar()
	ref := v.ValueFrom.ResourceFieldRef
	if ref == nil {
		t.Fatal("expected resource field ref")
	}
	if ref.Divisor.Cmp(resource.MustParse("1Mi")) != 0 {
		t.Fatalf("unexpected divisor %s", ref.Divisor.String())
	}
}

func TestResourceLimitsRequestsEqualLimits(t *testing.T) {
	req := ResourceLimits{CPU: "2", Memory: "2Gi"}.Requirements()

	for _, name := range []corev1.ResourceName{corev1.ResourceCPU, corev1.ResourceMemory} {
		limit := req.Limits[name]
		request := req.Requests[name]
		if limit.Cmp(request) != 0 {
			t.Fatalf("requests must equal limits for %s: %s vs %s", name, limit.String(), request.String())
		}
	}
}
