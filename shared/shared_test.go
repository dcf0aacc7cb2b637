package shared

import (
	"testing"

	"github.com/wippyai/refkit"
)

// testRes counts deletion-policy invocations via the default policy.
type testRes struct {
	closed int
	n      int
}

func (r *testRes) Release() { r.closed++ }

func TestPtr_Empty(t *testing.T) {
	var p Ptr[testRes]

	if p.Valid() {
		t.Fatal("zero value should be empty")
	}
	if p.Get() != nil {
		t.Fatal("empty handle should observe nil")
	}
	if p.UseCount() != 0 {
		t.Fatalf("expected use count 0, got %d", p.UseCount())
	}

	// Releasing an empty handle is a no-op.
	p.Release()
	p.Release()
}

func TestPtr_NewNil(t *testing.T) {
	p := New[testRes](nil)
	if p.Valid() || p.UseCount() != 0 {
		t.Fatal("New(nil) should yield an empty handle")
	}
}

func TestPtr_Lifecycle(t *testing.T) {
	res := &testRes{n: 5}
	p := New(res)

	if !p.Valid() {
		t.Fatal("handle should be valid")
	}
	if p.Get() != res {
		t.Fatal("Get should return the managed pointer")
	}
	if p.UseCount() != 1 {
		t.Fatalf("expected use count 1, got %d", p.UseCount())
	}

	q := p.Clone()
	if p.UseCount() != 2 || q.UseCount() != 2 {
		t.Fatalf("expected use count 2, got %d/%d", p.UseCount(), q.UseCount())
	}

	p.Release()
	if res.closed != 0 {
		t.Fatal("deleter ran while an owner remained")
	}
	if q.UseCount() != 1 {
		t.Fatalf("expected use count 1, got %d", q.UseCount())
	}

	q.Release()
	if res.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", res.closed)
	}
}

func TestPtr_UseCountTracksLiveHandles(t *testing.T) {
	res := &testRes{}
	p := New(res)

	clones := make([]Ptr[testRes], 0, 5)
	for i := 0; i < 5; i++ {
		clones = append(clones, p.Clone())
	}
	if p.UseCount() != 6 {
		t.Fatalf("expected use count 6, got %d", p.UseCount())
	}

	for i := range clones {
		clones[i].Release()
		want := 6 - i - 1
		if got := p.UseCount(); got != want {
			t.Fatalf("after %d releases expected use count %d, got %d", i+1, want, got)
		}
		if res.closed != 0 {
			t.Fatal("deleter ran early")
		}
	}

	p.Release()
	if res.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", res.closed)
	}
}

func TestPtr_Move(t *testing.T) {
	res := &testRes{}
	p := New(res)

	q := p.Move()
	if p.Valid() {
		t.Fatal("moved-from handle should be empty")
	}
	if q.Get() != res || q.UseCount() != 1 {
		t.Fatal("move should transfer the reference without counter changes")
	}

	q.Release()
	if res.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", res.closed)
	}
}

func TestPtr_Assign(t *testing.T) {
	a := &testRes{n: 1}
	b := &testRes{n: 2}
	p := New(a)
	q := New(b)

	p.Assign(q)
	if a.closed != 1 {
		t.Fatal("assignment should release the prior value")
	}
	if p.Get() != b || p.UseCount() != 2 {
		t.Fatal("assignment should share the new value")
	}

	p.Release()
	q.Release()
	if b.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", b.closed)
	}
}

func TestPtr_SelfAssign(t *testing.T) {
	res := &testRes{}
	p := New(res)

	p.Assign(p)
	if p.UseCount() != 1 {
		t.Fatalf("self-assign should leave counters unchanged, got %d", p.UseCount())
	}
	if p.Get() != res {
		t.Fatal("self-assign should leave the handle valid")
	}

	p.AssignMove(&p)
	if p.UseCount() != 1 || p.Get() != res {
		t.Fatal("self-move-assign should leave the handle valid")
	}

	p.Release()
	if res.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", res.closed)
	}
}

func TestPtr_AssignMove(t *testing.T) {
	a := &testRes{}
	b := &testRes{}
	p := New(a)
	q := New(b)

	p.AssignMove(&q)
	if a.closed != 1 {
		t.Fatal("move-assignment should release the prior value")
	}
	if q.Valid() {
		t.Fatal("moved-from handle should be empty")
	}
	if p.Get() != b || p.UseCount() != 1 {
		t.Fatal("move-assignment should transfer the reference")
	}

	p.Release()
	if b.closed != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", b.closed)
	}
}

func TestPtr_Reset(t *testing.T) {
	res := &testRes{n: 5}
	p := New(res)

	p.Reset()
	if res.closed != 1 {
		t.Fatal("reset should release the value")
	}
	if p.Valid() || p.UseCount() != 0 {
		t.Fatal("reset handle should be empty")
	}

	next := &testRes{n: 6}
	p.ResetTo(next)
	if p.Get() != next || p.UseCount() != 1 {
		t.Fatal("ResetTo should adopt the new value")
	}
	p.Release()
	if next.closed != 1 {
		t.Fatal("deleter should run for the adopted value")
	}
}

func TestPtr_Swap(t *testing.T) {
	a := &testRes{n: 1}
	b := &testRes{n: 2}
	p := New(a)
	q := New(b)
	q2 := q.Clone()

	p.Swap(&q)
	if p.Get() != b || q.Get() != a {
		t.Fatal("swap should exchange references")
	}
	if p.UseCount() != 2 || q.UseCount() != 1 {
		t.Fatal("swap should not touch counters")
	}

	p.Release()
	q.Release()
	q2.Release()
	if a.closed != 1 || b.closed != 1 {
		t.Fatal("each value should be released exactly once")
	}
}

func TestPtr_CustomDeleter(t *testing.T) {
	var got *int
	v := 41
	p := NewWithDeleter(&v, func(x *int) { got = x })

	p.Release()
	if got != &v {
		t.Fatal("custom deleter should be invoked with the managed pointer")
	}
}

func TestPtr_NopDeleter(t *testing.T) {
	res := &testRes{}
	p := NewWithDeleter(res, refkit.NopDeleter[testRes]())
	p.Release()
	if res.closed != 0 {
		t.Fatal("nop deleter should not touch the value")
	}
}

func TestPtr_Equal(t *testing.T) {
	res := &testRes{}
	p := New(res)
	q := p.Clone()
	other := New(&testRes{})

	if !p.Equal(q) {
		t.Fatal("clones should compare equal")
	}
	if p.Equal(other) {
		t.Fatal("distinct values should not compare equal")
	}

	var e1, e2 Ptr[testRes]
	if !e1.Equal(e2) {
		t.Fatal("empty handles should compare equal")
	}

	p.Release()
	q.Release()
	other.Release()
}

func TestAlias_SubObject(t *testing.T) {
	type box struct {
		res testRes
	}
	b := &box{res: testRes{n: 7}}
	var del int
	p := NewWithDeleter(b, func(*box) { del++ })

	field := Alias(p, &p.Get().res)
	if field.Get() != &b.res {
		t.Fatal("alias should observe the sub-object pointer")
	}
	if field.UseCount() != 2 || p.UseCount() != 2 {
		t.Fatal("alias should share the owner's counters")
	}

	// Releasing the original first must not invalidate the alias.
	p.Release()
	if del != 0 {
		t.Fatal("value released while the alias still owns it")
	}
	if field.Get().n != 7 {
		t.Fatal("aliased sub-object should still be readable")
	}

	field.Release()
	if del != 1 {
		t.Fatalf("deleter should run exactly once, ran %d times", del)
	}
}

func TestAlias_Empty(t *testing.T) {
	var p Ptr[testRes]
	v := 3
	a := Alias(p, &v)

	// Aliasing constructor may pair a live observed pointer with no block.
	if a.Get() != &v {
		t.Fatal("alias should observe the given pointer")
	}
	if a.UseCount() != 0 {
		t.Fatal("alias of an empty handle owns nothing")
	}
	a.Release()
}
