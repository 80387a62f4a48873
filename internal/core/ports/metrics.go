package ports

// Metrics receives domain observations from the services. A nil Metrics is
// never passed to services; use NopMetrics.
type Metrics interface {
	LoginAttempt(result string)
	ForcedLogout()
	StaleResponse(list string)
	PrintFile(kind, result string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) LoginAttempt(string)      {}
func (NopMetrics) ForcedLogout()            {}
func (NopMetrics) StaleResponse(string)     {}
func (NopMetrics) PrintFile(string, string) {}
