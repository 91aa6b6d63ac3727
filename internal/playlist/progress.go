package playlist

// Progress labels reported to observers.
const (
	LabelProcessing = "Processing media"
	LabelCombining  = "Combining"
)

// ProgressObserver receives synchronous progress updates.
type ProgressObserver interface {
	OnProgress(done, total int, label string)
}

// ProgressFunc adapts a function to ProgressObserver.
type ProgressFunc func(done, total int, label string)

// OnProgress calls f.
func (f ProgressFunc) OnProgress(done, total int, label string) {
	f(done, total, label)
}

type nopObserver struct{}

func (nopObserver) OnProgress(int, int, string) {}

// Observer returns o, or a no-op observer when o is nil.
func Observer(o ProgressObserver) ProgressObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}
