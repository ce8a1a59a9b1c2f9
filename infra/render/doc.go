// Package render contains the simulation observers run at the end of each
// tick: a text view of the grid, a JSON frame log and a stats publisher.
// They only read the city registry and the current metrics.Stats.
package render
