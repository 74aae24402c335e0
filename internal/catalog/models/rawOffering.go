package models

// RawOffering is the shared intermediate shape both provider adapters
// emit. It is never persisted; the normalizer consumes it within a run.
type RawOffering struct {
	ProviderID  string
	Country     string
	Service     string
	ServiceName string
	Operator    string
	Cost        float64
	Count       int
	SuccessRate float64
}
