package metacopy

import "sync/atomic"

// resource counts references to an object whose destruction has to wait
// for in-flight GPU work. Embedders call init with their teardown
// function; the counter starts at one reference for the creator.
type resource struct {
	refs    int64
	destroy func()
}

func (r *resource) init(destroy func()) {
	r.refs = 1
	r.destroy = destroy
}

// Retain adds a reference. Call it when handing the object to a command
// buffer that outlives the current scope.
func (r *resource) Retain() {
	atomic.AddInt64(&r.refs, 1)
}

// Release drops a reference. The release that brings the count to zero
// runs the teardown; the object must not be used afterwards.
func (r *resource) Release() {
	if atomic.AddInt64(&r.refs, -1) == 0 {
		r.destroy()
	}
}
