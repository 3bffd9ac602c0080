package command

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "sh",
		Args:    []string{"-c", "echo hello"},
		Timeout: 5 * time.Second,
	})
	if !result.Ok() {
		t.Fatalf("expected success, got exit %d, err %v", result.ExitCode, result.Err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "hello" {
		t.Errorf("stdout = %q, want hello", result.Stdout)
	}
	if result.FailureKind != FailureNone {
		t.Errorf("FailureKind = %v, want FailureNone", result.FailureKind)
	}
	if result.Duration == 0 {
		t.Error("duration should be non-zero")
	}
}

func TestExecRunner_Stderr(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "sh",
		Args:    []string{"-c", "echo diagnostic >&2"},
		Timeout: 5 * time.Second,
	})
	if len(result.Stderr) == 0 {
		t.Error("stderr should contain diagnostic output")
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "sh",
		Args:    []string{"-c", "exit 3"},
		Timeout: 5 * time.Second,
	})
	if result.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", result.ExitCode)
	}
	if result.Err == nil {
		t.Error("expected non-nil error")
	}
	if result.FailureKind != FailureCommandErr {
		t.Errorf("FailureKind = %v, want FailureCommandErr", result.FailureKind)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "sh",
		Args:    []string{"-c", "sleep 30"},
		Timeout: 200 * time.Millisecond,
	})
	if !result.TimedOut {
		t.Error("expected TimedOut=true")
	}
	if result.FailureKind != FailureTimeout {
		t.Errorf("FailureKind = %v, want FailureTimeout", result.FailureKind)
	}
}

func TestExecRunner_BinaryNotFound(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "definitely-not-a-real-binary-42",
		Timeout: 5 * time.Second,
	})
	if result.Err == nil {
		t.Fatal("expected error for missing binary")
	}
	if result.FailureKind != FailureNotFound {
		t.Errorf("FailureKind = %v, want FailureNotFound", result.FailureKind)
	}
}

func TestExecRunner_Stdin(t *testing.T) {
	r := NewExecRunner()
	result := r.Run(context.Background(), Spec{
		Name:    "cat",
		Stdin:   strings.NewReader("piped input"),
		Timeout: 5 * time.Second,
	})
	if string(result.Stdout) != "piped input" {
		t.Errorf("stdout = %q, want piped input", result.Stdout)
	}
}

func TestExecRunner_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	r := NewExecRunner()
	result := r.Run(ctx, Spec{
		Name: "sh",
		Args: []string{"-c", "sleep 30"},
	})
	if result.Err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestClassifyFailure_PermissionByExitCode(t *testing.T) {
	cases := []struct {
		exitCode int
		want     FailureKind
	}{
		{126, FailurePermission}, // POSIX: cannot execute
		{127, FailureNotFound},   // POSIX: command not found
	}
	for _, tc := range cases {
		result := Result{
			ExitCode: tc.exitCode,
			Err:      fmt.Errorf("exec: exit status %d", tc.exitCode),
		}
		classifyFailure(&result)
		if result.FailureKind != tc.want {
			t.Errorf("exitCode=%d: FailureKind = %v, want %v", tc.exitCode, result.FailureKind, tc.want)
		}
	}
}

func TestClassifyFailure_PermissionByStderr(t *testing.T) {
	for _, pattern := range []string{"permission denied", "operation not permitted"} {
		result := Result{
			ExitCode: 1,
			Err:      fmt.Errorf("exec: exit status 1"),
			Stderr:   []byte("error: " + pattern),
		}
		classifyFailure(&result)
		if result.FailureKind != FailurePermission {
			t.Errorf("stderr=%q: FailureKind = %v, want FailurePermission", pattern, result.FailureKind)
		}
	}
}

func TestClassifyFailure_Unknown(t *testing.T) {
	result := Result{
		ExitCode: -1,
		Err:      fmt.Errorf("exec: some os error"),
	}
	classifyFailure(&result)
	if result.FailureKind != FailureUnknown {
		t.Errorf("FailureKind = %v, want FailureUnknown", result.FailureKind)
	}
}

func TestFailureKind_String(t *testing.T) {
	cases := map[FailureKind]string{
		FailureNone:       "none",
		FailureTimeout:    "timeout",
		FailurePermission: "permission_denied",
		FailureCommandErr: "command_error",
		FailureNotFound:   "not_found",
		FailureUnknown:    "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
