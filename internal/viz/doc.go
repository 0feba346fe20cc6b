// Package viz renders simulation output for the terminal.
//
// It has no knowledge of how trajectories are produced; callers hand it
// plain series and results:
//
//   - [EnergyPlot] and [SeriesPlot]: asciigraph line charts
//   - [PhasePortrait], [ScatterPlot]: Braille [Canvas] drawings in the (q, p) plane
//   - [SweepTable], [EquationsTable], [MatrixTable]: go-pretty tables
//   - lipgloss styles driven by the current [Theme]
package viz
