package output

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	Components []ComponentInfo `json:"components"`
	Summary    ListSummary     `json:"summary"`
}

// ComponentInfo describes one component.
type ComponentInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Function   string         `json:"function"`
	Props      []PropInfo     `json:"props"`
	Examples   []string       `json:"examples"`
	Embeds     []string       `json:"embeds"`
	EmbeddedBy []string       `json:"embedded_by"`
	Layers     int            `json:"layers"`
	LastBuild  *LastBuildInfo `json:"last_build,omitempty"`
}

// PropInfo describes a declared prop.
type PropInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// LastBuildInfo is the most recent recorded artifact for a component.
type LastBuildInfo struct {
	Status      string  `json:"status"`
	ContentHash string  `json:"content_hash,omitempty"`
	DurationMS  int64   `json:"duration_ms"`
	CompletedAt string  `json:"completed_at"`
	Error       *string `json:"error,omitempty"`
}

// ListSummary aggregates the list output.
type ListSummary struct {
	TotalComponents int `json:"total_components"`
	TotalProps      int `json:"total_props"`
	Colors          int `json:"colors"`
	Breakpoints     int `json:"breakpoints"`
}

// GraphOutput is the JSON shape of the graph command.
type GraphOutput struct {
	Levels          []GraphLevel `json:"levels"`
	Pages           []string     `json:"pages"`  // components nothing embeds
	Leaves          []string     `json:"leaves"` // components that embed nothing
	TotalComponents int          `json:"total_components"`
	TotalEdges      int          `json:"total_edges"`
}

// GraphLevel groups components that can build in parallel.
type GraphLevel struct {
	Level      int         `json:"level"`
	Components []GraphNode `json:"components"`
}

// GraphNode is one component in the embedding graph.
type GraphNode struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Embeds     []string `json:"embeds"`
	EmbeddedBy []string `json:"embedded_by"`
}

// BuildOutput is the JSON shape of the build command.
type BuildOutput struct {
	BuildID    string           `json:"build_id,omitempty"`
	Status     string           `json:"status"`
	Components []BuildComponent `json:"components"`
	Built      int              `json:"built"`
	Skipped    int              `json:"skipped"`
	Failed     int              `json:"failed"`
	DurationMS int64            `json:"duration_ms"`
}

// BuildComponent is the outcome for one component.
type BuildComponent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Module     string `json:"module,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
	Hash       string `json:"hash,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// CheckOutput is the JSON shape of the check command.
type CheckOutput struct {
	Diagnostics []DiagnosticInfo `json:"diagnostics"`
	Summary     CheckSummary     `json:"summary"`
}

// DiagnosticInfo is one validation finding.
type DiagnosticInfo struct {
	Component string `json:"component"`
	Layer     string `json:"layer,omitempty"`
	Severity  string `json:"severity"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// CheckSummary counts findings by severity.
type CheckSummary struct {
	Components int `json:"components"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Infos      int `json:"infos"`
}

// StyleOutput is the JSON shape of the style command.
type StyleOutput struct {
	Component    string      `json:"component"`
	Layer        string      `json:"layer"`
	Width        float64     `json:"width"`
	Declarations []StyleDecl `json:"declarations"`
}

// StyleDecl is one resolved CSS declaration.
type StyleDecl struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// CompileOutput is the JSON shape of the compile command.
type CompileOutput struct {
	Component string `json:"component"`
	Function  string `json:"function"`
	Module    string `json:"module,omitempty"`
	CSS       string `json:"css,omitempty"`
	Hash      string `json:"hash"`
}
