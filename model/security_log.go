package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityLog is a persisted audit event (logins, registrations, denied access).
type SecurityLog struct {
	gorm.Model
	EventType string `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	UserID    string `json:"user_id" gorm:"column:user_id;type:varchar(64);index"`
	LoginID   string `json:"login_id" gorm:"column:login_id;type:varchar(191);index"`
	Portal    string `json:"portal" gorm:"column:portal;type:varchar(32)"`
	IP        string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	// "City/Country" when the GeoIP database knows the address.
	Location  string         `json:"location" gorm:"column:location;type:varchar(255)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
