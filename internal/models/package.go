package models

import "time"

type ProductType string

const (
	ProductTypeVPS       ProductType = "vps"
	ProductTypeDedicated ProductType = "dedicated"
)

// Package is a promotional bundle of VPS plans and dedicated servers.
type Package struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"type:varchar(120);not null" json:"name"`
	TotalPrice     float64       `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	DurationMonths int           `gorm:"not null;default:1" json:"durationMonths"`
	Items          []PackageItem `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PackageItem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	PackageID   uint        `gorm:"not null;index" json:"packageId"`
	ProductType ProductType `gorm:"type:varchar(20);not null" json:"productType"`
	VPSID       *uint       `gorm:"column:vps_id" json:"vpsId"`
	DedicatedID *uint       `json:"dedicatedId"`
	Quantity    int         `gorm:"not null;default:1" json:"quantity"`
	Note        string      `gorm:"type:varchar(255)" json:"note,omitempty"`

	VPS       *VPS       `gorm:"foreignKey:VPSID" json:"vps,omitempty"`
	Dedicated *Dedicated `gorm:"foreignKey:DedicatedID" json:"dedicated,omitempty"`
}
