package expenses

// Category is one of the fixed spending categories. The set is resolved once
// from configuration at startup and never changes at runtime.
type Category struct {
	Name    string
	Command string
	Limit   int // monthly limit, currency units
}

type Categories []Category

// Limits holds configured monthly limits per category.
type Limits struct {
	Food    int
	General int
	Fun     int
}

// NewCategories builds the closed category set in display order.
func NewCategories(limits Limits) Categories {
	return Categories{
		{Name: "FOOD", Command: "/food", Limit: limits.Food},
		{Name: "GENERAL", Command: "/general", Limit: limits.General},
		{Name: "FUN", Command: "/fun", Limit: limits.Fun},
	}
}

// ByCommand returns the category selected by a command keyword or nil.
func (cs Categories) ByCommand(command string) *Category {
	for i := range cs {
		if cs[i].Command == command {
			return &cs[i]
		}
	}
	return nil
}

// ByName returns the category with the given name or nil.
func (cs Categories) ByName(name string) *Category {
	for i := range cs {
		if cs[i].Name == name {
			return &cs[i]
		}
	}
	return nil
}
