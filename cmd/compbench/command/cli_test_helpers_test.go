package command_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/delaneyj/compbench/cmd/compbench/command"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, args ...string) (result cliResult) {
	t.Helper()

	outReader, outWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}
	errReader, errWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stderr pipe: %v", err)
	}

	originalStdout := os.Stdout
	originalStderr := os.Stderr
	os.Stdout = outWriter
	os.Stderr = errWriter

	var outBuf, errBuf bytes.Buffer
	outDone := make(chan struct{})
	errDone := make(chan struct{})
	go func() {
		_, _ = io.Copy(&outBuf, outReader)
		close(outDone)
	}()
	go func() {
		_, _ = io.Copy(&errBuf, errReader)
		close(errDone)
	}()

	defer func() {
		outWriter.Close()
		errWriter.Close()
		<-outDone
		<-errDone
		os.Stdout = originalStdout
		os.Stderr = originalStderr
		result.stdout = outBuf.String()
		result.stderr = errBuf.String()
		outReader.Close()
		errReader.Close()
	}()

	root := command.NewRootCommand()
	root.SetArgs(append([]string{"--log-level=debug"}, args...))
	result.err = root.Execute()

	return result
}
