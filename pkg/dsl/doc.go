/*
Package dsl provides a fluent builder for interactive tools.

A tool is an ordered table of states plus lifecycle callbacks. Tools that share
a leading sequence of states can start from a common base table and append
their own tail.

Example usage:

	tool, err := dsl.New("line").
		Label("Line").
		Doc("Add a line between two points.").
		Vector("p1", 2, domain.UnitLength, "x", "y").
		Vector("p2", 2, domain.UnitLength, "x", "y").
		State("Start").Pick(sketch.KindPoint).Prop("p1").Interactive().Prefill().
			Func(worldPos).Create(addPoint).Done().
		State("End").Pick(sketch.KindPoint).Prop("p2").Interactive().
			Func(worldPos).Create(addPoint).Done().
		Main(addLine).
		Build()
*/
package dsl
