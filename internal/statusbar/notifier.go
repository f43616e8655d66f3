package statusbar

// Notifier asks the status bar to redraw before its next tick.
// Any number of Notify calls between two redraws collapse into one.
type Notifier struct {
	changedCh chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{
		changedCh: make(chan struct{}, 1),
	}
}

func (n *Notifier) Notify() {
	select {
	case n.changedCh <- struct{}{}:
	default:
	}
}

func (n *Notifier) changed() <-chan struct{} {
	return n.changedCh
}
