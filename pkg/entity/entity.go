// Package entity provides embeddable base structs for mapped entities:
// a logical-delete marker and the standard audit columns. Embedding them
// gives an entity the corresponding columns without redeclaring tags:
//
//	type Account struct {
//		entity.Audit
//		ID   int64  `db:"id,pk,auto"`
//		Name string `db:"name,notnull"`
//	}
package entity

import (
	"time"
)

// Soft-delete marker values used by LogicDelete.
const (
	Deleted   = "Y"
	Undeleted = "N"
)

// LogicDelete adds a logical-delete marker column. Rows are marked
// deleted with a sentinel value instead of being physically removed;
// generated SELECTs filter to live rows and DELETEs become UPDATEs.
type LogicDelete struct {
	IsDeleted string `db:"is_deleted,softdelete,deleted:Y,undeleted:N,notnull,type:CHAR(1)"`
}

// MarkDeleted sets the marker to the deleted sentinel.
func (e *LogicDelete) MarkDeleted() {
	e.IsDeleted = Deleted
}

// MarkUndeleted sets the marker to the live sentinel.
func (e *LogicDelete) MarkUndeleted() {
	e.IsDeleted = Undeleted
}

// IsLogicDeleted reports whether the row is marked deleted.
func (e *LogicDelete) IsLogicDeleted() bool {
	return e.IsDeleted == Deleted
}

// Audit adds the standard audit columns on top of logical delete.
// Creator and GmtCreated are filled on insert; Modifier and GmtModified
// on insert and update. Fill values come from the operation context
// (see WithActor) and are never applied over non-zero fields.
type Audit struct {
	LogicDelete

	Creator     string    `db:"creator,notnull,noupdate,fill:insert"`
	Modifier    string    `db:"modifier,notnull,fill:insert|update"`
	GmtCreated  time.Time `db:"gmt_created,notnull,noupdate,fill:insert"`
	GmtModified time.Time `db:"gmt_modified,notnull,fill:insert|update"`
}
