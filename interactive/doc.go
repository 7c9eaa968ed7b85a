// Package interactive renders fractals continuously in response to live input.
//
// A Controller owns one worker goroutine and a single pending-request slot.
// Submit overwrites the slot and returns a new Generation; the worker always
// takes the newest request, so a burst of submissions collapses into one
// render. Every render is cancelled as soon as a newer generation arrives or
// Shutdown is called, and results are handed to a FrameSink only while their
// generation is still current. Cancelled renders never produce events.
//
// The caller-side helpers complete the loop:
//   - LatestSink keeps only the most recent event and wakes a reader
//   - Presenter accepts frames in generation order for a fixed target size
//   - ViewState tracks the view and skips resubmitting identical requests
//   - Scheduler holds back submissions while a render is in flight during
//     continuous motion
//
// Example:
//
//	sink := interactive.NewLatestSink()
//	c := interactive.NewController(sink)
//	defer c.Shutdown()
//
//	gen := c.Submit(fractal.DefaultRequest(pixels))
//	<-sink.Notify()
//	if ev, ok := sink.Take(); ok && ev.EventGeneration() == gen {
//		// present ev
//	}
package interactive
