package progression

// Event describes one change made by the engine. Events are handed to the
// Recorder after the change is applied and saved.
type Event struct {
	Action    string
	SubjectID string
	XP        int
	Level     int
	Details   map[string]any
}

// Recorder journals engine events. Implementations must not call back into
// the engine.
type Recorder interface {
	Record(evt Event)
}

// NoopRecorder drops every event.
type NoopRecorder struct{}

// Record implements Recorder.
func (NoopRecorder) Record(Event) {}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Event)

// Record implements Recorder.
func (f RecorderFunc) Record(evt Event) { f(evt) }
