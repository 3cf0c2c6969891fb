package config

// SupportedVersion is the project file version this loader understands.
const SupportedVersion = "1"

// ProjectFile represents the structure of the comfortmap.yaml project file.
type ProjectFile struct {
	Version     string             `yaml:"version"`
	Tool        string             `yaml:"tool"`
	Terminal    string             `yaml:"terminal"`
	Environment map[string]string  `yaml:"environment"`
	Jobs        map[string]*JobDTO `yaml:"jobs"`
}

// JobDTO represents a job definition in the project file.
type JobDTO struct {
	Task    string            `yaml:"task"`
	WorkDir string            `yaml:"workDir"`
	Inputs  map[string]string `yaml:"inputs"`
}
