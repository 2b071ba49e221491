package models

import "time"

// Role ids stamped on accounts.
const (
	RoleSuperAdmin = 1
	RoleAdmin      = 2
	RoleStudent    = 3
	RoleTeacher    = 4
)

// Column names shared by every account table.
const (
	ColPassword   = "password"
	ColRoleID     = "role_id"
	ColCreateTime = "create_time"
	ColUpdateTime = "update_time"
)

// Student is a student profile and its credentials.
type Student struct {
	SID        string    `gorm:"column:sid;primaryKey;size:32" json:"sid"`
	SName      string    `gorm:"column:sname;size:64;not null" json:"sname"`
	Sex        string    `gorm:"column:sex;size:8" json:"sex"`
	Grade      string    `gorm:"column:grade;size:16" json:"grade"`
	ClassName  string    `gorm:"column:classname;size:64" json:"classname"`
	Password   string    `gorm:"column:password;size:255;not null" json:"-"`
	RoleID     int       `gorm:"column:role_id;default:3" json:"role_id"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

// TableName overrides the table name.
func (Student) TableName() string {
	return "student"
}

// Columns lists the writable columns, role included.
func (Student) Columns() []string {
	return append(KindStudent.Columns(), ColRoleID)
}

// Teacher is a teacher profile and its credentials.
type Teacher struct {
	TID        string    `gorm:"column:tid;primaryKey;size:32" json:"tid"`
	TName      string    `gorm:"column:tname;size:64;not null" json:"tname"`
	Dept       string    `gorm:"column:dept;size:64" json:"dept"`
	Password   string    `gorm:"column:password;size:255;not null" json:"-"`
	RoleID     int       `gorm:"column:role_id;default:4" json:"role_id"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

// TableName overrides the table name.
func (Teacher) TableName() string {
	return "teacher"
}

// Columns lists the writable columns, role included.
func (Teacher) Columns() []string {
	return append(KindTeacher.Columns(), ColRoleID)
}

// Admin is an administrator account.
type Admin struct {
	AID        string    `gorm:"column:aid;primaryKey;size:32" json:"aid"`
	AName      string    `gorm:"column:aname;size:64" json:"aname"`
	Password   string    `gorm:"column:password;size:255;not null" json:"-"`
	RoleID     int       `gorm:"column:role_id;default:2" json:"role_id"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

// TableName overrides the table name.
func (Admin) TableName() string {
	return "admin"
}

// Columns lists the writable columns, role included.
func (Admin) Columns() []string {
	return append(KindAdmin.Columns(), ColRoleID)
}
