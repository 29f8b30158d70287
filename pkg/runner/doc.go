/*
Package runner drives Stencil sessions from a stream of commands.

It decouples the command source from the engine through the IOHandler
strategy, so the same loop replays a text script, consumes NDJSON from another
process, or is fed by tests.

# Text scripts

One command per line; blank lines and lines starting with '#' are skipped.

	tool line          arm a tool; the next event invokes it
	move 10 20         pointer movement
	click 10 20 [btn]  button press (left by default)
	release [x y]      button release
	key 5 | key enter  one key press, by character or key name
	type 12.5mm        one key press per character
	tab | enter | esc | backspace
	wheel 1.5          scroll
	select point Point.001 [index]
	exec line p2=4,5 Start=point:Point.001
	cancel

# NDJSON

Each line is an object with a "cmd" field and the same arguments, e.g.
{"cmd":"click","x":10,"y":20} or
{"cmd":"exec","tool":"line","properties":{"p2":[4,5]},"pointers":{"Start":{"kind":"point","name":"Point.001"}}}.
*/
package runner
