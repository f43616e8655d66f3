package display

import "errors"

var ErrSinkFull = errors.New("status channel is full")

// StatusChan hands frames to another goroutine, such as a bubbletea program.
// The channel is closed after the final frame.
type StatusChan chan Frame

func NewStatusChan() StatusChan {
	return make(StatusChan, 128)
}

// Refresh never blocks. A reader that falls behind loses frames instead of stalling the timer.
func (s StatusChan) Refresh(frame Frame) error {
	select {
	case s <- frame:
		return nil
	default:
		return ErrSinkFull
	}
}

// Finish makes room for the final frame if it has to, then closes the channel.
func (s StatusChan) Finish(frame Frame) error {
	select {
	case s <- frame:
	default:
		select {
		case <-s:
		default:
		}
		s <- frame
	}
	close(s)
	return nil
}
