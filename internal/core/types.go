package core

import "context"

// ToolKind selects how a tool takes input and renders output.
type ToolKind string

const (
	KindText    ToolKind = "text"    // one textarea in, lines out
	KindCompare ToolKind = "compare" // two lists in
	KindTable   ToolKind = "table"   // spreadsheet upload
	KindGender  ToolKind = "gender"  // names in, remote lookups
	KindArchive ToolKind = "archive" // names in, ZIP download out
)

// ToolInfo is the display metadata of a tool.
type ToolInfo struct {
	Key         string   `json:"key"`         // URL segment: "validate-cpf"
	Group       string   `json:"group"`       // dashboard section: "Validação"
	Label       string   `json:"label"`       // "Validar CPF"
	Description string   `json:"description"` // one sentence for the dashboard
	Help        string   `json:"-"`           // markdown shown on the tool page
	Kind        ToolKind `json:"kind"`
	Order       int      `json:"-"` // position within Group
}

// Section is a titled block of output lines, used when a tool produces more
// than one list.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// TextOutput is what a text transform returns.
type TextOutput struct {
	Lines    []string  `json:"lines,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Notice   string    `json:"notice,omitempty"` // shown instead of empty output
	Stats    any       `json:"stats,omitempty"`
}

// LineCount returns the number of output lines across Lines and Sections.
func (o TextOutput) LineCount() int {
	n := len(o.Lines)
	for _, s := range o.Sections {
		n += len(s.Lines)
	}
	return n
}

// TransformFunc converts pasted text.
type TransformFunc func(ctx context.Context, input string) (TextOutput, error)

// ToolDefinition is a registered tool. Transform is set for KindText tools;
// the other kinds have dedicated Service methods.
type ToolDefinition struct {
	Info      ToolInfo
	Transform TransformFunc
}

// TextResult is the outcome of Service.RunText.
type TextResult struct {
	Tool string `json:"tool"`
	TextOutput
	InputLines int `json:"input_lines"`
}

// Text joins Lines with newlines.
func (r TextResult) Text() string {
	return joinLines(r.Lines)
}
