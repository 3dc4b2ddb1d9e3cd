package models

// RSVP rows relate a user to an event. Hosting is written exactly once, at
// event creation, and never re-assigned. Attending and Considering are
// toggled by user action and are mutually exclusive per (user, event) pair;
// the rsvp package enforces the exclusion.

type Hosting struct {
	ID      int64 `json:"id" db:"id" readOnly:"true"`
	UserID  int64 `json:"user_id" db:"user_id"`
	EventID int64 `json:"event_id" db:"event_id"`
}

func (Hosting) TableName() string {
	return "hosting"
}

func (h Hosting) GetID() int64 {
	return h.ID
}

func (Hosting) EmptySlice() interface{} {
	return &[]Hosting{}
}

type Attending struct {
	ID      int64 `json:"id" db:"id" readOnly:"true"`
	UserID  int64 `json:"user_id" db:"user_id"`
	EventID int64 `json:"event_id" db:"event_id"`
}

func (Attending) TableName() string {
	return "attending"
}

func (a Attending) GetID() int64 {
	return a.ID
}

func (Attending) EmptySlice() interface{} {
	return &[]Attending{}
}

type Considering struct {
	ID      int64 `json:"id" db:"id" readOnly:"true"`
	UserID  int64 `json:"user_id" db:"user_id"`
	EventID int64 `json:"event_id" db:"event_id"`
}

func (Considering) TableName() string {
	return "considering"
}

func (c Considering) GetID() int64 {
	return c.ID
}

func (Considering) EmptySlice() interface{} {
	return &[]Considering{}
}
