package main

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/stencil-dev/stencil/internal/errors"
)

func TestRunDoctorMissingTools(t *testing.T) {
	// Empty PATH makes every tool lookup fail.
	t.Setenv("PATH", "")

	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	var doctorErr error
	captureStdout(t, func() {
		captureStderr(t, func() {
			doctorErr = runDoctor()
		})
	})

	var se *errors.StencilError
	if !stderrors.As(doctorErr, &se) || se.Code != "E108" {
		t.Fatalf("runDoctor = %v, want E108", doctorErr)
	}
}

func TestCheckTool(t *testing.T) {
	t.Setenv("PATH", "")

	var ok bool
	captureStdout(t, func() {
		captureStderr(t, func() {
			ok = checkTool("definitely-not-a-real-tool", "install it")
		})
	})
	if ok {
		t.Error("checkTool reported a missing tool as present")
	}
}
