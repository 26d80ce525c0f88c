// Package test holds the assertions shared by the package tests. Each one
// reports through t.Errorf, so a test keeps going after a failure, and
// returns whether the assertion held.
package test

import "testing"

// ExpectEquality fails the test unless got equals want.
func ExpectEquality[T comparable](t *testing.T, got T, want T) bool {
	t.Helper()
	if got == want {
		return true
	}
	t.Errorf("got %v, want %v (%T)", got, want, got)
	return false
}

// ExpectSuccess fails the test unless v is true or a nil error.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	ok, supported := outcome(v)
	if !supported {
		t.Fatalf("cannot judge success of a %T", v)
	}
	if !ok {
		t.Errorf("expected success, got %v", v)
	}
	return ok
}

// ExpectFailure fails the test unless v is false or a non-nil error.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	ok, supported := outcome(v)
	if !supported {
		t.Fatalf("cannot judge failure of a %T", v)
	}
	if ok {
		t.Errorf("expected failure, got %v", v)
	}
	return !ok
}

// outcome maps a bool or an error to success. A nil interface is a nil
// error.
func outcome(v any) (ok bool, supported bool) {
	switch v := v.(type) {
	case nil:
		return true, true
	case bool:
		return v, true
	case error:
		return false, true
	}
	return false, false
}

// ExpectPanic fails the test if f returns normally.
func ExpectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic")
		}
	}()
	f()
}
