package config

// Projectfile represents the structure of the snc.yaml configuration file.
// Absent fields keep their engine defaults.
type Projectfile struct {
	Provider         string      `yaml:"provider"`
	Model            string      `yaml:"model"`
	BaseURL          string      `yaml:"baseUrl"`
	APIKeyEnv        string      `yaml:"apiKeyEnv"`
	Language         string      `yaml:"language"`
	Framework        string      `yaml:"framework"`
	Style            string      `yaml:"style"`
	MaxAttempts      int         `yaml:"maxAttempts"`
	Parallelism      int         `yaml:"parallelism"`
	Timeout          string      `yaml:"timeout"`
	TransientRetries int         `yaml:"transientRetries"`
	Evaluate         bool        `yaml:"evaluate"`
	CacheSize        int         `yaml:"cacheSize"`
	Store            string      `yaml:"store"`
	Checker          *CheckerDTO `yaml:"checker"`
}

// CheckerDTO represents the checker section of the configuration.
type CheckerDTO struct {
	Kind    string `yaml:"kind"`
	Command string `yaml:"command"`
	Strict  bool   `yaml:"strict"`
}
