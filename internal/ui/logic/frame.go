package logic

// FrameGuard lets work run at most once per frame. The zero value is ready
// to use; frame 0 is a valid first frame.
type FrameGuard struct {
	last uint64
	seen bool
}

// Enter reports whether frame differs from the last frame entered
func (g *FrameGuard) Enter(frame uint64) bool {
	if g.seen && frame == g.last {
		return false
	}
	g.last = frame
	g.seen = true
	return true
}

// Reset forgets the last frame
func (g *FrameGuard) Reset() {
	*g = FrameGuard{}
}
