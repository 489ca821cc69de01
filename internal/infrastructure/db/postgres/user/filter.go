package user

import (
	"fmt"
	"strings"

	domain "user-resource-api/internal/domain/user"
)

var columns = map[domain.Field]string{
	domain.FieldID:        "id",
	domain.FieldName:      "name",
	domain.FieldEmail:     "email",
	domain.FieldStatus:    "status",
	domain.FieldCreatedAt: "created_at",
}

// whereClause renders f as " WHERE a AND b ..." with positional args.
// An empty filter renders as "".
func whereClause(f *domain.Filter) (string, []any, error) {
	preds := f.Predicates()
	if len(preds) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds)+1)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, p := range preds {
		col, ok := columns[p.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", p.Field)
		}

		switch p.Op {
		case domain.OpEq:
			conds = append(conds, col+" = "+next(p.Values[0]))
		case domain.OpLike:
			conds = append(conds, col+" LIKE "+next(fmt.Sprintf("%%%v%%", p.Values[0])))
		case domain.OpBetween:
			conds = append(conds, col+" BETWEEN "+next(p.Values[0])+" AND "+next(p.Values[1]))
		case domain.OpLt:
			conds = append(conds, col+" < "+next(p.Values[0]))
		case domain.OpGt:
			conds = append(conds, col+" > "+next(p.Values[0]))
		default:
			return "", nil, fmt.Errorf("unknown filter operator %d on %q", p.Op, p.Field)
		}
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
