/*
Package server implements msgpack IPC for symbol lookup.

Clients write a stream of msgpack maps to stdin and read one msgpack map per
request from stdout. Requests are handled in order, synchronously, with
timing info included in resolve responses.

# IPC

Every message carries an "id" which is echoed back. A message with a "q"
field is a resolve request:

	{"id": "r1", "q": "black star", "l": 5}

and is answered with candidates in rank order:

	{"id": "r1", "s": [{"c": "★", "l": "★: black star", "r": 1}], "n": 1, "t": 87}

"c" is the character to insert, "l" the label to show and "r" the 1-based
rank. "n" is the number of candidates and "t" the lookup time in
microseconds. "l" in the request is optional and defaults to match.limit.

A message with an "action" field manages the running server:

	{"id": "m1", "action": "reload"}
	{"id": "m2", "action": "stats"}
	{"id": "m3", "action": "health"}

	{"id": "m2", "status": "ok", "stats": {"entries": 31874, "generation": 1}}

A failed reload answers with status "error" and keeps serving the previous
table. Malformed resolve requests get an error message:

	{"id": "r2", "e": "missing 'q' parameter", "c": 400}

Custom override files can be watched (server.watch); any write to one of them
reloads the table as if a reload action had been sent.
*/
package server

// request is the envelope every incoming message decodes into.
type request struct {
	ID     string  `msgpack:"id"`
	Query  *string `msgpack:"q,omitempty"`
	Limit  int     `msgpack:"l,omitempty"`
	Action string  `msgpack:"action,omitempty"`
}

// ResolveRequest - resolve a query into candidates
type ResolveRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Limit int    `msgpack:"l,omitempty"`
}

// Candidate - one entry of a resolve response
type Candidate struct {
	Char  string `msgpack:"c"`
	Label string `msgpack:"l"`
	Rank  uint16 `msgpack:"r"`
}

// ResolveResponse - resolve response
type ResolveResponse struct {
	ID         string      `msgpack:"id"`
	Candidates []Candidate `msgpack:"s"`
	Count      int         `msgpack:"n"`
	TimeTaken  int64       `msgpack:"t"`
}

// ManageRequest - management request; Action is "reload", "stats" or "health"
type ManageRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
}

// ManageResponse - management response
type ManageResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Error  string         `msgpack:"error,omitempty"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ResolveError holds basic error information for rejected requests
type ResolveError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	actionReload = "reload"
	actionStats  = "stats"
	actionHealth = "health"

	statusOK    = "ok"
	statusError = "error"
)
