package models

// Activity categorizes events. It cannot be deleted while it still owns any
// event; the repository enforces the guard.
type Activity struct {
	ID     int64  `json:"id" db:"id" readOnly:"true"`
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `validate:"required" json:"name" db:"name"`
	Icon   string `validate:"required" json:"icon" db:"icon"`
}

func (Activity) TableName() string {
	return "activity"
}

func (a Activity) GetID() int64 {
	return a.ID
}

func (Activity) EmptySlice() interface{} {
	return &[]Activity{}
}
