package models

import "github.com/noah-isme/tutorbot-admin/pkg/format"

// Student is a bot user as stored in stdlist.
type Student struct {
	ID        int64
	TGID      int64
	FullName  string
	Group     string
	IsActive  bool
	CreatedAt string
}

// StudentFromRow applies the read defaults: an absent active flag means active.
func StudentFromRow(r Row) Student {
	return Student{
		ID:        r.Int("id", 0),
		TGID:      r.Int("tgid", 0),
		FullName:  r.String("fullname", ""),
		Group:     r.String("Group", ""),
		IsActive:  r.Bool("isactive", true),
		CreatedAt: r.String("createdat", ""),
	}
}

// Names splits FullName into first and last name.
func (s Student) Names() (first, last string) {
	return format.ParseFullName(s.FullName)
}
