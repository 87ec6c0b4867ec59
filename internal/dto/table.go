package dto

// File is the YAML interchange form of a parsed rule-table file.
// Expression fields hold the raw decoded YAML values; see compiler.Parser.
type File struct {
	Sections []Section `mapstructure:"sections"`
}

// Section is one table section.
type Section struct {
	Name       string           `mapstructure:"name"`
	Statements []map[string]any `mapstructure:"statements"`
}

// Span is an explicit source location supplied by the parser.
type Span struct {
	Line  int `mapstructure:"line"`
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// Statement holds exactly one of Directive, Var or Transition.
type Statement struct {
	Directive  string      `mapstructure:"directive"`
	Value      any         `mapstructure:"value"`
	Symmetry   *Symmetry   `mapstructure:"symmetry"`
	Var        string      `mapstructure:"var"`
	Transition *Transition `mapstructure:"transition"`
	Span       *Span       `mapstructure:"span"`
}

type Transition struct {
	Initial any         `mapstructure:"initial"`
	Napkin  []Term      `mapstructure:"napkin"`
	Result  any         `mapstructure:"result"`
	Aux     []Auxiliary `mapstructure:"aux"`
}

type Term struct {
	Dir     string `mapstructure:"dir"`
	Through string `mapstructure:"through"`
	Value   any    `mapstructure:"value"`
}

type Auxiliary struct {
	Targets []string  `mapstructure:"targets"`
	Group   *Symmetry `mapstructure:"group"`
	Value   any       `mapstructure:"value"`
}

type Symmetry struct {
	Op   string     `mapstructure:"op"`
	Name string     `mapstructure:"name"`
	Args []string   `mapstructure:"args"`
	Of   []Symmetry `mapstructure:"of"`
}
