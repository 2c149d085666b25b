package onnx

import "testing"

func TestGetONNXLibraryPath(t *testing.T) {
	path, err := getONNXLibraryPath()
	if err != nil {
		t.Logf("getONNXLibraryPath() failed (expected if ONNX Runtime is not installed): %v", err)
		return
	}
	if path == "" {
		t.Error("getONNXLibraryPath() returned an empty path with no error")
	}
}

func TestONNXRuntimeSmoke(t *testing.T) {
	// TestONNXRuntime touches the real shared library, so a failure here
	// just means ONNX Runtime isn't installed in this environment.
	if err := TestONNXRuntime(); err != nil {
		t.Logf("TestONNXRuntime() failed (expected if ONNX Runtime is not installed): %v", err)
	}
}
