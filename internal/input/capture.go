package input

// watchCapture wires the exclusive-capture lifecycle: activation on the
// surface requests capture, and capture-change notifications move the
// tracker between Inactive and Active.
func (t *Tracker) watchCapture() {
	if t.capture == nil {
		t.log.Warnf("tracker %s: exclusive capture requested but platform has none", t.id)
		return
	}
	t.activateID = t.surface.AddListener(EventActivate, func(Signal) {
		_ = t.RequestCapture()
	})
	t.unsubscribe = t.capture.OnCaptureChange(t.handleCaptureChange)
}

// RequestCapture asks the platform for exclusive capture on the tracked
// surface. A rejected request leaves the tracker Inactive; the error is
// returned for hosts that want to report it but the tracker never retries.
func (t *Tracker) RequestCapture() error {
	if t.closed {
		return ErrClosed
	}
	if !t.exclusive || t.capture == nil {
		return ErrCaptureUnsupported
	}
	if t.active {
		return nil
	}
	if err := t.capture.RequestCapture(t.surface); err != nil {
		t.metrics.RecordCaptureFailure()
		t.log.Debugf("tracker %s: capture request failed: %v", t.id, err)
		return err
	}
	return nil
}

// ReleaseCapture asks the platform to drop exclusive capture. The tracker
// becomes Inactive when the platform reports the change.
func (t *Tracker) ReleaseCapture() error {
	if t.closed {
		return ErrClosed
	}
	if !t.exclusive || t.capture == nil {
		return ErrCaptureUnsupported
	}
	return t.capture.ReleaseCapture()
}

func (t *Tracker) handleCaptureChange(holder Surface) {
	if t.closed {
		return
	}
	owned := holder != nil && holder == t.surface

	switch {
	case owned && !t.active:
		t.activate()
		t.metrics.RecordCaptureAcquired()
	case !owned && t.active:
		t.deactivate()
		t.metrics.RecordCaptureLost()
	}
}
