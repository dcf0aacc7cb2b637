// Package unique implements single-owner handles with a customizable
// deletion policy.
//
// A Unique holds exactly one reference to its value; there is no count
// and no sharing. Ownership is transferred with Move or Detach and ends
// with Release, which runs the policy exactly once:
//
//	u := unique.New(openThing())
//	defer u.Release()
//
// Slice is the element-group variant, running the policy over every
// owned element.
package unique
