package domain

// RunResult is the outcome of a completed run, as returned by the front-ends and
// memoized by result caches. Runs are deterministic, so a result computed once for a
// given machine and input stays valid.
type RunResult struct {
	Machine string   `json:"machine,omitempty"`
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Tape    []Symbol `json:"tape"`
	State   State    `json:"state"`
	Head    int      `json:"head"`
	Steps   int      `json:"steps"`
	Cached  bool     `json:"cached,omitempty"`
}
