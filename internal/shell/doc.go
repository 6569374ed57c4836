// Package shell talks to the ADXShell helper executable.
//
// A Session keeps one helper process alive per project and exchanges framed
// request/response pairs over its standard streams: the response is the text
// written to stdout (success) or stderr (failure) up to a line beginning with
// the [ADXShell:End] sentinel. OneShot runs the helper once for commands that
// need no session (show, import, test).
package shell
