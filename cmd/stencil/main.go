// Command stencil drives the operator engine from scripts, a terminal
// editor or an HTTP API.
package main

func main() {
	Execute()
}
