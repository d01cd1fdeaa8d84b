package testutil

import (
	"reflect"
	"testing"
)

func TestRecorder_Order(t *testing.T) {
	r := NewRecorder[int]()
	a, b := r.Hook("a"), r.Hook("b")
	a(1)
	b(2)
	a(3)

	if got, want := r.Names(), []string{"a", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v want %v", got, want)
	}
	if got := r.Count("a"); got != 2 {
		t.Errorf("Count(a) = %d want 2", got)
	}
	last, err := r.Last()
	if err != nil || last != 3 {
		t.Errorf("Last() = %d, %v want 3", last, err)
	}

	r.Reset()
	if _, err := r.Last(); err == nil {
		t.Error("Last() after Reset should fail")
	}
}
