package models

type UserAccount struct {
	ID      int64  `json:"id" db:"id" readOnly:"true"`
	Name    string `validate:"required" json:"name" db:"name"`
	Email   string `validate:"required,email" json:"email" db:"email"`
	Picture string `json:"picture" db:"picture"`
}

func (UserAccount) TableName() string {
	return "user_account"
}

func (u UserAccount) GetID() int64 {
	return u.ID
}

func (UserAccount) EmptySlice() interface{} {
	return &[]UserAccount{}
}
