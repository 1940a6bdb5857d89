// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "testing"

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner[string]()
	a := in.Intern("a")
	b := in.Intern("b")
	aAgain := in.Intern("a")

	if a != aAgain {
		t.Errorf("Intern(a) = %d, second call = %d, want equal", a, aAgain)
	}
	if a == b {
		t.Errorf("distinct values interned to the same index %d", a)
	}
	if in.Lookup(a) != "a" {
		t.Errorf("Lookup(%d) = %q, want a", a, in.Lookup(a))
	}
	if in.Lookup(b) != "b" {
		t.Errorf("Lookup(%d) = %q, want b", b, in.Lookup(b))
	}
	if in.Len() != 2 {
		t.Errorf("Len() = %d, want 2", in.Len())
	}
}
