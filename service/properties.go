package service

import (
	"encoding/json"
)

// Property is one named, described, bounded tunable a host process can
// list and validate against — the Go rendition of the reference plugin's
// PLUGIN_PROPERTY struct / PROPS[] array.
type Property struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
}

// Properties mirrors the reference's get_properties_as_json: a fixed set
// of tunables reflecting the current solver configuration, suitable for a
// host process to introspect before submitting work.
func Properties(cfg Config) []Property {
	return []Property{
		{Name: "edgebits", Description: "log2 of nodes per partition", Value: int(cfg.Params.EdgeBits), Min: 1, Max: 63},
		{Name: "proofsize", Description: "required cycle length", Value: cfg.Params.ProofSize, Min: 2, Max: 128},
		{Name: "nthreads", Description: "worker thread count", Value: cfg.Nthreads, Min: 1, Max: 1 << 16},
		{Name: "ntrims", Description: "trim round count", Value: cfg.Ntrims, Min: 0, Max: 1 << 16},
		{Name: "maxsols", Description: "maximum solutions per solve", Value: cfg.MaxSols, Min: 1, Max: 1 << 16},
	}
}

// PropertiesJSON marshals Properties(cfg) with the stdlib encoder — this
// is plain DTO serialization with no parsing or validation logic beyond
// what encoding/json already provides, so no third-party codec is wired
// here (see DESIGN.md).
func PropertiesJSON(cfg Config) ([]byte, error) {
	return json.Marshal(Properties(cfg))
}
