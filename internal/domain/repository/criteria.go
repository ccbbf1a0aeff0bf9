package repository

// Operator is a comparison applied by a Clause.
type Operator string

const (
	OpEq       Operator = "eq"
	OpContains Operator = "contains" // case-insensitive substring
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
)

// Clause is a single filter condition on an entity field.
type Clause struct {
	Field string
	Op    Operator
	Value any
}

// Criteria is a conjunction of clauses. An empty Criteria matches every row.
type Criteria []Clause

// Where starts a Criteria with an equality clause.
func Where(field string, value any) Criteria {
	return Criteria{{Field: field, Op: OpEq, Value: value}}
}

// Eq appends an equality clause.
func (c Criteria) Eq(field string, value any) Criteria {
	return append(c, Clause{Field: field, Op: OpEq, Value: value})
}

// Contains appends a case-insensitive substring clause.
func (c Criteria) Contains(field, term string) Criteria {
	return append(c, Clause{Field: field, Op: OpContains, Value: term})
}

// Gte appends a greater-than-or-equal clause.
func (c Criteria) Gte(field string, value any) Criteria {
	return append(c, Clause{Field: field, Op: OpGte, Value: value})
}

// Lte appends a less-than-or-equal clause.
func (c Criteria) Lte(field string, value any) Criteria {
	return append(c, Clause{Field: field, Op: OpLte, Value: value})
}
