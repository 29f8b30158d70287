// Package terminal runs sketch sessions in a terminal with tcell.
//
// Cells map to screen space through CellSize, so pick tolerances keep their
// meaning: with the default 8x16 cell, a tolerance of 8 is about one column.
// Tool shortcuts come from the configured keymap; q quits while no tool runs.
package terminal
