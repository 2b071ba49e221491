package models

// Kind is the identity of an account: it selects the profile table and its key.
type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindAdmin   Kind = "admin"
)

// Kinds lists every account kind.
var Kinds = []Kind{KindStudent, KindTeacher, KindAdmin}

// ParseKind validates an identity string.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStudent, KindTeacher, KindAdmin:
		return Kind(s), true
	default:
		return "", false
	}
}

// Importable reports whether accounts of this kind can be added or imported in bulk.
// Admins are only created by the seed-admin command.
func (k Kind) Importable() bool {
	return k == KindStudent || k == KindTeacher
}

// PrimaryKey returns the account identifier column.
func (k Kind) PrimaryKey() string {
	switch k {
	case KindStudent:
		return "sid"
	case KindTeacher:
		return "tid"
	default:
		return "aid"
	}
}

// NameColumn returns the column matched by the `name` list filter, or "".
func (k Kind) NameColumn() string {
	switch k {
	case KindStudent:
		return "sname"
	case KindTeacher:
		return "tname"
	default:
		return "aname"
	}
}

// ClassColumn returns the column matched by the `class` list filter, or "".
func (k Kind) ClassColumn() string {
	if k == KindStudent {
		return "classname"
	}
	return ""
}

// DefaultRoleID returns the role assigned to new accounts of this kind.
func (k Kind) DefaultRoleID() int {
	switch k {
	case KindStudent:
		return RoleStudent
	case KindTeacher:
		return RoleTeacher
	default:
		return RoleAdmin
	}
}

// Columns returns the profile columns a client may write, excluding password,
// role and timestamps.
func (k Kind) Columns() []string {
	switch k {
	case KindStudent:
		return []string{"sid", "sname", "sex", "grade", "classname"}
	case KindTeacher:
		return []string{"tid", "tname", "dept"}
	default:
		return []string{"aid", "aname"}
	}
}

// Model returns a pointer to a zero value of the kind's GORM model.
func (k Kind) Model() any {
	switch k {
	case KindStudent:
		return &Student{}
	case KindTeacher:
		return &Teacher{}
	default:
		return &Admin{}
	}
}

// NewList returns a pointer to an empty slice of the kind's model, ready for Find.
func (k Kind) NewList() any {
	switch k {
	case KindStudent:
		return &[]Student{}
	case KindTeacher:
		return &[]Teacher{}
	default:
		return &[]Admin{}
	}
}

// All returns every model managed by the service, in migration order.
func All() []any {
	return []any{&Student{}, &Teacher{}, &Admin{}, &Race{}, &Record{}}
}
