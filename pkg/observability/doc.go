/*
Package observability provides tools for monitoring the Stencil operator engine.

It includes lifecycle hooks that log every operator transition and a Prometheus
collector that counts invocations, state visits and outcomes per tool.
*/
package observability
