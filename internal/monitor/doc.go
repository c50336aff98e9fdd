// Package monitor runs the refresh loop of the resource monitor.
//
// A Controller ties the pieces together once per tick:
//
//	Sampler -> Snapshot -> proctable.Build -> Presenter -> render.Sink
//
// Between ticks it waits on the sink for input with a single bounded
// wait, so key presses are applied without waiting for the next sample.
//
// # State
//
// All loop state lives in a State value that Tick, HandleKey and Redraw
// take and return: the run state, the view mode, the sort key and the
// last good snapshot. The controller itself only holds the current sink.
//
//	Starting -> Running <-> Degraded -> Exiting
//
// A failed sample moves Running to Degraded. The last good snapshot stays
// on screen with a stale marker until a sample succeeds again.
//
// # Output
//
// The sink is either an interactive terminal or plain text. Plain output
// is chosen at start when no terminal can be acquired, and mid-run when
// drawing to the terminal fails. A plain output failure ends the loop
// with an IO error. The sink is closed on every exit path.
//
// # Keyboard Shortcuts
//
//	d, D        - Toggle basic/detailed columns
//	s, S        - Cycle sort key (CPU/MEM/PID)
//	q, Q, Ctrl+C - Quit
package monitor
