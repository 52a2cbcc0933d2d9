// Package infra contains technical adapters such as the JSON state
// store, CSV roster readers and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
