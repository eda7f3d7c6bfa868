// Package executor runs pre- and post-deploy commands through the
// platform shell.
//
// Command strings are operator-authored and reach the shell verbatim:
// no templating, no sanitization, no splitting. On Windows the shell is
// %COMSPEC% (cmd with /C); everywhere else it is sh -c, so hook
// semantics do not drift with the operator's login shell. Output streams
// straight through to the invoker's stdout and stderr, and no timeout is
// imposed: a hung command hangs the run.
package executor
