package catalog

// OptionPossibilities expands a declared option list into every option
// combination a component can be rendered with. Each result row is one
// variant's active option set, in declaration order.
//
// A plain option doubles the combinations of the remaining list (present or
// absent). An enum group contributes one combination per member, plus the
// no-selection row unless selectNone is false.
func OptionPossibilities(options []Option) [][]SimpleOption {
	if len(options) == 0 {
		return [][]SimpleOption{{}}
	}

	head := options[0]
	tails := OptionPossibilities(options[1:])

	var result [][]SimpleOption
	if head.IsEnum() {
		for _, member := range head.EnumOptions {
			for _, tail := range tails {
				row := make([]SimpleOption, 0, 1+len(tail))
				row = append(row, member)
				row = append(row, tail...)
				result = append(result, row)
			}
		}
		if head.AllowsNone() {
			result = append(result, tails...)
		}
	} else {
		for _, tail := range tails {
			row := make([]SimpleOption, 0, 1+len(tail))
			row = append(row, head.SimpleOption)
			row = append(row, tail...)
			result = append(result, row)
			result = append(result, tail)
		}
	}
	return result
}

// IsOptionActive reports whether the named option is part of an active set.
func IsOptionActive(name string, active []SimpleOption) bool {
	for _, o := range active {
		if o.Name == name {
			return true
		}
	}
	return false
}

// EffectivePins computes the pin set of one variant: the declared pins minus
// every active option's subPins, plus every active option's addPins. The
// declared slice is never modified.
func EffectivePins(declared []string, active []SimpleOption) []string {
	sub := make(map[string]bool)
	var add []string
	for _, o := range active {
		for _, p := range o.SubPins {
			sub[p] = true
		}
		add = append(add, o.AddPins...)
	}

	pins := make([]string, 0, len(declared)+len(add))
	for _, p := range declared {
		if !sub[p] {
			pins = append(pins, p)
		}
	}
	return append(pins, add...)
}

// EffectiveDescription returns a fresh copy of desc with its pin list
// recomputed for the given active options. Variants must never alias the
// base description's pin slice.
func EffectiveDescription(desc Description, active []SimpleOption) Description {
	switch d := desc.(type) {
	case *Node:
		out := *d
		out.Pins = EffectivePins(d.Pins, active)
		return &out
	case *Path:
		out := *d
		out.Pins = EffectivePins(d.Pins, active)
		return &out
	default:
		return desc
	}
}
