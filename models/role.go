package models

const (
	RoleCustomer  = "CUSTOMER"
	RoleProvider  = "PROVIDER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

type Role struct {
	Base
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Users       []User `json:"users,omitempty" gorm:"many2many:user_roles;"`
}
