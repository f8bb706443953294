package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")

	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     Kind
	}{
		{name: "internal wraps cause", err: Internal(cause), sentinel: ErrInternal, kind: KindInternal},
		{name: "not found", err: NotFoundf("pre-block %d not found", 3), sentinel: ErrNotFound, kind: KindNotFound},
		{name: "shutdown", err: Shutdown("engine stopped"), sentinel: ErrShutdown, kind: KindShutdown},
		{name: "wrapped kind survives", err: fmt.Errorf("get: %w", NotFoundf("missing head")), sentinel: ErrNotFound, kind: KindNotFound},
		{name: "internal keeps existing kind", err: Internal(Shutdown("closing")), sentinel: ErrShutdown, kind: KindShutdown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Fatalf("KindOf() = %v, want %v", got, tt.kind)
			}
			for _, other := range []error{ErrInternal, ErrNotFound, ErrShutdown} {
				if other != tt.sentinel && errors.Is(tt.err, other) {
					t.Fatalf("%v unexpectedly matches %v", tt.err, other)
				}
			}
		})
	}

	if !errors.Is(Internal(cause), cause) {
		t.Fatal("Internal should keep the cause reachable")
	}
	if KindOf(cause) != KindInternal {
		t.Fatal("foreign errors should classify as internal")
	}
}
