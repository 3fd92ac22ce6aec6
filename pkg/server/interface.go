/*
Package server implements msgpack IPC for the quick switcher.

Clients write msgpack encoded requests to stdin and read msgpack encoded
responses from stdout, one object per message with no extra framing. Every
request carries an id that is echoed back, and an action.

Suggestion requests send the raw input and an optional limit:

	{"id": "q1", "action": "suggest", "i": "* proj", "l": 10}

The response names the active mode and lists the rendered suggestions, best
first, with highlight ranges as rune offsets:

	{"id": "q1", "m": "starred", "s": [{"y": "starred", "w": "Notes", "o": "projects/Notes.md",
	  "mt": "parentPath", "r": 1, "nr": [{"s": 0, "e": 8}]}], "c": 1, "t": 85}

Choosing picks an entry of the last list returned for the same input:

	{"id": "q2", "action": "choose", "i": "* proj", "x": 0, "n": false}

Config requests read or change the command strings and limits:

	{"id": "c1", "action": "config", "op": "get"}
	{"id": "c2", "action": "config", "op": "set", "starred_list_command": "fav "}

Messages for the user raised while handling a request, such as a file that
failed to open, follow the response as notice frames:

	{"action": "notice", "msg": "Unable to open starred file a/Foo.md"}

Failures are reported as error frames with code 400 for bad requests and 500
for internal errors.
*/
package server

const (
	ActionSuggest = "suggest"
	ActionChoose  = "choose"
	ActionConfig  = "config"
	ActionHealth  = "health"
	ActionNotice  = "notice"
)

// Request is the single request shape; Action selects which fields are used.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Input  string `msgpack:"i,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`

	// choose
	Index   int  `msgpack:"x,omitempty"`
	NewLeaf bool `msgpack:"n,omitempty"`

	// config
	Op                 string  `msgpack:"op,omitempty"` // "get" or "set"
	StarredListCommand *string `msgpack:"starred_list_command,omitempty"`
	EditorListCommand  *string `msgpack:"editor_list_command,omitempty"`
	CommandListCommand *string `msgpack:"command_list_command,omitempty"`
	MaxSuggestions     *int    `msgpack:"max_suggestions,omitempty"`
}

// Range is a highlighted rune span, end exclusive.
type Range struct {
	Start int `msgpack:"s"`
	End   int `msgpack:"e"`
}

// Suggestion is one rendered suggestion.
type Suggestion struct {
	Type        string   `msgpack:"y"`
	Title       string   `msgpack:"w"`
	Note        string   `msgpack:"o,omitempty"`
	Path        string   `msgpack:"p,omitempty"`
	MatchType   string   `msgpack:"mt"`
	Score       int      `msgpack:"sc,omitempty"`
	Rank        uint16   `msgpack:"r"`
	TitleRanges []Range  `msgpack:"tr,omitempty"`
	NoteRanges  []Range  `msgpack:"nr,omitempty"`
	Classes     []string `msgpack:"cl,omitempty"`
}

// SuggestResponse answers a suggest request.
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Mode        string       `msgpack:"m"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	// TimeTaken is in microseconds.
	TimeTaken int64 `msgpack:"t"`
}

// StatusResponse answers choose and health requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ConfigValues are the settings exposed over IPC.
type ConfigValues struct {
	StarredListCommand string `msgpack:"starred_list_command"`
	EditorListCommand  string `msgpack:"editor_list_command"`
	CommandListCommand string `msgpack:"command_list_command"`
	MaxSuggestions     int    `msgpack:"max_suggestions"`
	MaxInput           int    `msgpack:"max_input"`
}

// ConfigResponse answers a config request with the values now in effect.
type ConfigResponse struct {
	ID     string       `msgpack:"id"`
	Status string       `msgpack:"status"`
	Config ConfigValues `msgpack:"config"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Notice is an unsolicited message for the user.
type Notice struct {
	Action  string `msgpack:"action"`
	Message string `msgpack:"msg"`
}
