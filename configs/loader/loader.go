package loader

// ConfigLoader supplies raw configuration values keyed by variable name.
type ConfigLoader interface {
	Load() (map[string]string, error)
}
