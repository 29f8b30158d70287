/*
Package stencil is an interactive operator engine for drawing and constraint tools.

A tool is a table of states ("pick the first point", "pick the second point",
"type the distance"). The engine drives a tool through its states from raw
input events: it picks existing elements under the cursor, creates missing ones,
accepts typed numbers with units, prefills states from the selection and keeps
the host's undo history clean, so that a cancelled tool leaves no trace.

# Architecture

The engine depends on its host only through the ports in pkg/ports. The
pkg/sketch package provides a reference host: a small 2D sketch with points,
lines, circles, mesh objects and constraints. Concrete tools live in pkg/tools
and are built with the fluent pkg/dsl builder.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/stencil"
		"github.com/aretw0/stencil/pkg/domain"
	)

	func main() {
		kit := stencil.New()
		scene := kit.NewScene(nil)
		ctx := context.Background()

		op, _, err := kit.Invoke(ctx, "line", scene, domain.ButtonPress(domain.ButtonLeft, domain.Vec2{}))
		if err != nil {
			log.Fatal(err)
		}
		rep, err := op.HandleEvent(ctx, domain.ButtonPress(domain.ButtonLeft, domain.Vec2{X: 50}))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(rep.Result, len(scene.Document().Lines))
	}
*/
package stencil
