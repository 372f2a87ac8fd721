package components

// Summary is one entry of the component list.
type Summary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Function string   `json:"function"`
	Props    []string `json:"props"`
	Examples []string `json:"examples"`
	Embeds   []string `json:"embeds"`
}

// Detail is a compiled component.
type Detail struct {
	Summary
	Module string `json:"module"`
	CSS    string `json:"css"`
	Hash   string `json:"hash"`
}

// Declaration is one resolved CSS property.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// LayerStyle is the effective style of a layer at a viewport width.
type LayerStyle struct {
	Component    string        `json:"component"`
	Layer        string        `json:"layer"`
	Width        float64       `json:"width"`
	Declarations []Declaration `json:"declarations"`
}
