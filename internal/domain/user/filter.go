package user

type (
	Field string
	Op    uint8

	// Predicate is a single field/operator/value constraint. Between carries
	// two values, every other operator carries one.
	Predicate struct {
		Field  Field
		Op     Op
		Values []any
	}

	// Filter is a conjunction of predicates with at most one predicate per
	// field: setting a field twice keeps the last assignment.
	Filter struct {
		preds []Predicate
	}
)

const (
	FieldID        Field = "id"
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldStatus    Field = "status"
	FieldCreatedAt Field = "created_at"
)

const (
	OpEq Op = iota + 1
	OpLike
	OpBetween
	OpLt
	OpGt
)

func NewFilter() *Filter { return &Filter{} }

// ActiveByID matches the user with the given id that is not soft-deleted.
func ActiveByID(id ID) *Filter {
	return NewFilter().Eq(FieldID, id).Eq(FieldStatus, true)
}

func ByID(id ID) *Filter { return NewFilter().Eq(FieldID, id) }

func (f *Filter) Eq(field Field, v any) *Filter {
	return f.set(Predicate{Field: field, Op: OpEq, Values: []any{v}})
}

// Like matches rows whose field contains substr.
func (f *Filter) Like(field Field, substr string) *Filter {
	return f.set(Predicate{Field: field, Op: OpLike, Values: []any{substr}})
}

func (f *Filter) Between(field Field, from, to any) *Filter {
	return f.set(Predicate{Field: field, Op: OpBetween, Values: []any{from, to}})
}

func (f *Filter) Lt(field Field, v any) *Filter {
	return f.set(Predicate{Field: field, Op: OpLt, Values: []any{v}})
}

func (f *Filter) Gt(field Field, v any) *Filter {
	return f.set(Predicate{Field: field, Op: OpGt, Values: []any{v}})
}

// Get returns the predicate currently set on field.
func (f *Filter) Get(field Field) (Predicate, bool) {
	if f == nil {
		return Predicate{}, false
	}
	for _, p := range f.preds {
		if p.Field == field {
			return p, true
		}
	}
	return Predicate{}, false
}

// Predicates returns a copy of the predicates in insertion order.
func (f *Filter) Predicates() []Predicate {
	if f == nil {
		return nil
	}
	out := make([]Predicate, len(f.preds))
	copy(out, f.preds)
	return out
}

func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.preds)
}

func (f *Filter) set(p Predicate) *Filter {
	for i := range f.preds {
		if f.preds[i].Field == p.Field {
			f.preds[i] = p
			return f
		}
	}
	f.preds = append(f.preds, p)
	return f
}
