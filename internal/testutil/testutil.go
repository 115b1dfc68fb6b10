// Package testutil provides shared test assertion helpers, reducing
// duplication across internal/raycast's (and its meshio subpackage's)
// test files, the way internal/testutil's teacher counterpart backs the
// teacher's own handler tests.
package testutil

import "testing"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
