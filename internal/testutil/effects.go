package testutil

import "sync"

// Notice is one recorded notification.
type Notice struct {
	Title string
	Body  string
}

// EffectRecorder records cues and notifications in call order.
type EffectRecorder struct {
	mu      sync.Mutex
	cues    []string
	notices []Notice
}

func (r *EffectRecorder) Cue(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, name)
}

func (r *EffectRecorder) Notify(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Title: title, Body: body})
}

func (r *EffectRecorder) Cues() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.cues...)
}

func (r *EffectRecorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
