package domain

import "time"

// Artifact is a declared output found on disk after a task ran.
type Artifact struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	// Path is absolute.
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

// Receipt records one invocation and the artifacts it produced.
type Receipt struct {
	ID         string     `json:"id"`
	Task       string     `json:"task"`
	Argv       []string   `json:"argv"`
	WorkDir    string     `json:"workDir"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	ExitCode   int        `json:"exitCode"`
	Artifacts  []Artifact `json:"artifacts"`
}

// Duration returns the wall-clock time the invocation took.
func (r *Receipt) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Artifact returns the artifact with the given output name.
func (r *Receipt) Artifact(name string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}
