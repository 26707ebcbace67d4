package charts

// Reporter receives a user-facing message whenever a chart fails.
type Reporter interface {
	Report(message string)
}

type ReporterFunc func(message string)

func (f ReporterFunc) Report(message string) { f(message) }

type nopReporter struct{}

func (nopReporter) Report(string) {}
