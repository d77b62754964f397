/*
Package ipc serves correction queries as msgpack messages over a byte stream, usually stdin/stdout.

Each request is one msgpack map:

	{"id": "req_001", "w": "qwick", "l": 3}

An optional "corpus" field selects a corpus other than the server default. Each response carries
the ranked suggestions with their probabilities, the candidate count, the resolving tier and the
time taken in microseconds:

	{"id": "req_001", "s": [{"w": "quick", "p": 1}], "c": 1, "tier": "single_edit", "t": 42}

Failed requests get an error message instead:

	{"id": "req_001", "e": "corpus named 'x' not found", "c": 404}

An empty "s" is a valid answer meaning no suggestions were found.
*/
package ipc

// CorrectionRequest - minimal correction request
type CorrectionRequest struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"w"`
	Limit  int    `msgpack:"l,omitempty"`
	Corpus string `msgpack:"corpus,omitempty"`
}

// Suggestion - minimal suggestion
type Suggestion struct {
	Word        string  `msgpack:"w"`
	Probability float64 `msgpack:"p"`
}

// CorrectionResponse - correction response
type CorrectionResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	Tier        string       `msgpack:"tier"`
	TimeTaken   int64        `msgpack:"t"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
