package harvest

// Renderer draws progress. All calls come from one goroutine, so
// implementations need no locking of their own.
type Renderer interface {
	Start(total int)
	Advance(done, total int, desc string)
	Println(line string)
	Stop()
}

type eventKind int

const (
	eventAdvance eventKind = iota
	eventFill
	eventPrint
)

type event struct {
	kind eventKind
	text string
}

// tracker serializes progress updates from every worker onto a single
// consumer goroutine that owns the counter and the renderer.
type tracker struct {
	events   chan event
	finished chan struct{}
	renderer Renderer
	total    int
	done     int
}

func newTracker(total int, r Renderer) *tracker {
	if r == nil {
		r = nopRenderer{}
	}
	t := &tracker{
		events:   make(chan event, 16),
		finished: make(chan struct{}),
		renderer: r,
		total:    total,
	}
	r.Start(total)
	go t.loop()
	return t
}

func (t *tracker) loop() {
	defer close(t.finished)
	for ev := range t.events {
		switch ev.kind {
		case eventAdvance:
			if t.done < t.total {
				t.done++
			}
			t.renderer.Advance(t.done, t.total, ev.text)
		case eventFill:
			if t.done < t.total {
				t.done = t.total
				t.renderer.Advance(t.done, t.total, "")
			}
		case eventPrint:
			t.renderer.Println(ev.text)
		}
	}
}

func (t *tracker) Advance(desc string) { t.events <- event{kind: eventAdvance, text: desc} }
func (t *tracker) Fill() { t.events <- event{kind: eventFill} }
func (t *tracker) Println(line string) { t.events <- event{kind: eventPrint, text: line} }

// Close drains pending events and stops the renderer. It returns the final
// counter value.
func (t *tracker) Close() int {
	close(t.events)
	<-t.finished
	t.renderer.Stop()
	return t.done
}

type nopRenderer struct{}

func (nopRenderer) Start(int) {}
func (nopRenderer) Advance(int, int, string) {}
func (nopRenderer) Println(string) {}
func (nopRenderer) Stop() {}
