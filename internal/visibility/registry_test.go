package visibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serge22/media-accordion/internal/viewport"
	"github.com/serge22/media-accordion/internal/visibility"
)

type fakeElement struct {
	size   viewport.Size
	hidden bool
}

func (f *fakeElement) Size() viewport.Size { return f.size }
func (f *fakeElement) Hidden() bool        { return f.hidden }

func visibleElement() *fakeElement {
	return &fakeElement{size: viewport.Size{Width: 400, Height: 300}}
}

type fakeObserver struct {
	deliver      func([]visibility.Entry)
	observed     map[viewport.Element]bool
	disconnected bool
}

func (o *fakeObserver) Observe(el viewport.Element)   { o.observed[el] = true }
func (o *fakeObserver) Unobserve(el viewport.Element) { delete(o.observed, el) }
func (o *fakeObserver) Disconnect() { o.disconnected = true }

func (o *fakeObserver) report(el viewport.Element, intersecting bool) {
	o.deliver([]visibility.Entry{{Target: el, Intersecting: intersecting}})
}

type recordingHandler struct {
	changes []bool
}

func (h *recordingHandler) OnVisibilityChange(visible bool) {
	h.changes = append(h.changes, visible)
}

func newTestRegistry() (*visibility.Registry, *fakeObserver) {
	obs := &fakeObserver{observed: make(map[viewport.Element]bool)}
	r := visibility.NewRegistry(func(deliver func([]visibility.Entry)) visibility.Observer {
		obs.deliver = deliver
		return obs
	})
	return r, obs
}

func TestRegisterCreatesObserverLazily(t *testing.T) {
	r, obs := newTestRegistry()
	assert.Nil(t, obs.deliver, "observer must not exist before first registration")

	el := visibleElement()
	r.Register(el, &recordingHandler{})
	require.NotNil(t, obs.deliver)
	assert.True(t, obs.observed[el])
	assert.Equal(t, 1, r.Size())
}

func TestRegisterIsIdempotent(t *testing.T) {
	r, _ := newTestRegistry()
	el := visibleElement()
	h := &recordingHandler{}

	r.Register(el, h)
	r.Register(el, h)
	assert.Equal(t, 1, r.Size())
}

func TestDeliverDispatchesToOwningHandler(t *testing.T) {
	r, obs := newTestRegistry()
	elA, elB := visibleElement(), visibleElement()
	hA, hB := &recordingHandler{}, &recordingHandler{}
	r.Register(elA, hA)
	r.Register(elB, hB)

	obs.deliver([]visibility.Entry{
		{Target: elA, Intersecting: true},
		{Target: elB, Intersecting: false},
	})

	assert.Equal(t, []bool{true}, hA.changes)
	assert.Equal(t, []bool{false}, hB.changes)
}

func TestDeliverIgnoresUnknownTargets(t *testing.T) {
	r, obs := newTestRegistry()
	el := visibleElement()
	h := &recordingHandler{}
	r.Register(el, h)

	stale := visibleElement()
	obs.report(stale, true)
	assert.Empty(t, h.changes)

	// A callback already in flight when Unregister ran is dropped too.
	r.Unregister(el)
	obs.report(el, true)
	assert.Empty(t, h.changes)
}

func TestIntersectingButNotRenderedIsNotVisible(t *testing.T) {
	r, obs := newTestRegistry()
	h := &recordingHandler{}

	hidden := &fakeElement{size: viewport.Size{Width: 400, Height: 300}, hidden: true}
	r.Register(hidden, h)
	obs.report(hidden, true)
	assert.Equal(t, []bool{false}, h.changes)

	collapsed := &fakeElement{}
	h2 := &recordingHandler{}
	r.Register(collapsed, h2)
	obs.report(collapsed, true)
	assert.Equal(t, []bool{false}, h2.changes)
}

func TestUnregisterIsNoopWhenMissing(t *testing.T) {
	r, _ := newTestRegistry()
	r.Unregister(visibleElement()) // must not panic
	assert.Equal(t, 0, r.Size())
}

func TestDestroyDisconnectsAndClears(t *testing.T) {
	r, obs := newTestRegistry()
	el := visibleElement()
	h := &recordingHandler{}
	r.Register(el, h)

	r.Destroy()
	assert.True(t, obs.disconnected)
	assert.Equal(t, 0, r.Size())

	// Idempotent teardown.
	r.Destroy()

	// Stale delivery after destroy is ignored.
	obs.report(el, true)
	assert.Empty(t, h.changes)
}

func TestHandlerMayUnregisterDuringDelivery(t *testing.T) {
	r, obs := newTestRegistry()
	el := visibleElement()
	h := &unregisteringHandler{}
	h.registry, h.el = r, el
	r.Register(el, h)

	obs.report(el, true)
	assert.Equal(t, 1, h.calls)
	assert.Equal(t, 0, r.Size())
}

type unregisteringHandler struct {
	registry *visibility.Registry
	el       viewport.Element
	calls    int
}

func (h *unregisteringHandler) OnVisibilityChange(bool) {
	h.calls++
	h.registry.Unregister(h.el)
}
