// Package catalog models the component catalog that drives the pipeline:
// which components exist, which pins and options they declare, and how
// rendered files are named. The catalog file is JSON with comments; it is
// validated on load so schema violations never reach the synthesis core.
package catalog

import "strings"

// SimpleOption is one selectable tikz option. AddPins and SubPins mutate the
// effective pin set of a variant that has the option active; the base
// description is never changed in place.
type SimpleOption struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	AddPins     []string `json:"addPins,omitempty"`
	SubPins     []string `json:"subPins,omitempty"`
}

// Label returns the display name when set, else the option name. Filenames
// and symbol ids are derived from labels.
func (o SimpleOption) Label() string {
	if o.DisplayName != "" {
		return o.DisplayName
	}
	return o.Name
}

// Option is either a simple option or an enum group of mutually exclusive
// options. Exactly one of the two shapes is populated; IsEnum discriminates.
type Option struct {
	SimpleOption
	EnumOptions []SimpleOption `json:"enumOptions,omitempty"`
	SelectNone  *bool          `json:"selectNone,omitempty"`
}

// IsEnum reports whether the option is an enum group.
func (o Option) IsEnum() bool {
	return len(o.EnumOptions) > 0
}

// AllowsNone reports whether an enum group may be left unselected.
// Unset defaults to true.
func (o Option) AllowsNone() bool {
	return o.SelectNone == nil || *o.SelectNone
}

// Description is the tagged union over the two component styles. Behavior
// that differs between them is selected by type switch, never by probing
// optional fields.
type Description interface {
	// TikzName is the logical component name symbols are clustered by.
	TikzName() string
	// BasePins returns the declared pin names before option adjustments.
	BasePins() []string
	// BaseOptions returns the declared option list.
	BaseOptions() []Option

	isDescription()
}

// Node describes a node-style component (placed, not drawn along a path).
type Node struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	GroupName   string   `json:"groupName,omitempty"`
	Class       string   `json:"class,omitempty"`
	Fillable    bool     `json:"fillable,omitempty"`
	Source      string   `json:"source,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Pins        []string `json:"pins,omitempty"`
}

func (n *Node) TikzName() string { return n.Name }
func (n *Node) BasePins() []string { return n.Pins }
func (n *Node) BaseOptions() []Option { return n.Options }
func (n *Node) isDescription() {}

// Path describes a path-style component (drawn between two coordinates).
type Path struct {
	DrawName    string   `json:"drawName"`
	DisplayName string   `json:"displayName,omitempty"`
	ShapeName   string   `json:"shapeName,omitempty"`
	GroupName   string   `json:"groupName,omitempty"`
	Class       string   `json:"class,omitempty"`
	Fillable    bool     `json:"fillable,omitempty"`
	Source      string   `json:"source,omitempty"`
	Stroke      bool     `json:"stroke,omitempty"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Pins        []string `json:"pins,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

func (p *Path) TikzName() string { return p.DrawName }
func (p *Path) BasePins() []string { return p.Pins }
func (p *Path) BaseOptions() []Option { return p.Options }
func (p *Path) isDescription() {}

// EffectiveShapeName returns the declared shape name, defaulting to the draw
// name with spaces removed plus "shape".
func (p *Path) EffectiveShapeName() string {
	if p.ShapeName != "" {
		return p.ShapeName
	}
	return strings.ReplaceAll(p.DrawName, " ", "") + "shape"
}

// StartAnchor and EndAnchor return the tikz anchors the path endpoints map
// to, defaulting to "b" and "a" as circuitikz does.
func (p *Path) StartAnchor() string {
	if p.Start != "" {
		return p.Start
	}
	return "b"
}

func (p *Path) EndAnchor() string {
	if p.End != "" {
		return p.End
	}
	return "a"
}

// Catalog is the parsed catalog file.
type Catalog struct {
	Nodes []*Node `json:"nodes"`
	Paths []*Path `json:"path"`
}
