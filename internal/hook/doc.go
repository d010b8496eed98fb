// Package hook implements the host's named-action dispatch.
//
// Listeners attach to an action name with a priority. When the action is
// fired, listeners run synchronously in ascending priority; listeners with
// equal priority run in the order they were added. The first listener error
// stops the dispatch and is returned to the caller as an *Error.
//
// Dispatcher is the narrow interface the plugin depends on. Registry is the
// in-process implementation used by the host runtime and by tests.
package hook
