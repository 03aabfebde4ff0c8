package models

import "time"

// VPS categories as stored; the catalog classifies them by keyword.
const (
	VPSCategoryLowSpace  = "LowSpace"
	VPSCategoryHighSpace = "HighSpace"
)

// VPS is a virtual server plan.
type VPS struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"type:varchar(120)" json:"name,omitempty"`
	Region          string  `gorm:"type:varchar(80);not null;index" json:"region"`
	Cores           int     `gorm:"not null" json:"cores"`
	RAMGB           int     `gorm:"column:ram_gb;not null" json:"ramGB"`
	StorageGB       int     `gorm:"column:storage_gb;not null" json:"storageGB"`
	StorageType     string  `gorm:"type:varchar(20);default:'SSD'" json:"storageType"`
	ConnectionSpeed string  `gorm:"type:varchar(40)" json:"connectionSpeed"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	OldPrice        float64 `gorm:"type:numeric(10,2);default:0" json:"oldPrice,omitempty"`
	Category        string  `gorm:"type:varchar(20);index" json:"category"`
	Featured        bool    `gorm:"default:false" json:"featured"`
	Limited         bool    `gorm:"default:false" json:"limited"`
	InStock         bool    `gorm:"default:true" json:"inStock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (VPS) TableName() string { return "vps_plans" }

// Dedicated is a bare-metal server offer.
type Dedicated struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(120)" json:"name,omitempty"`
	CPUModel    string  `gorm:"column:cpu_model;type:varchar(120);not null;default:'Unknown'" json:"cpuModel"`
	Cores       int     `gorm:"not null;default:1" json:"cores"`
	RAMGB       int     `gorm:"column:ram_gb;not null;default:1" json:"ramGB"`
	Storage     string  `gorm:"type:varchar(80);default:'500GB'" json:"storage"`
	StorageType string  `gorm:"type:varchar(20)" json:"storageType,omitempty"`
	Price       float64 `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	OldPrice    float64 `gorm:"type:numeric(10,2);default:0" json:"oldPrice,omitempty"`
	Brand       string  `gorm:"type:varchar(60);default:'Generic'" json:"brand"`
	Bandwidth   string  `gorm:"type:varchar(60);default:'Unlimited'" json:"bandwidth"`
	Speed       string  `gorm:"column:connection_speed;type:varchar(40)" json:"connectionSpeed,omitempty"`
	Location    string  `gorm:"type:varchar(80)" json:"location,omitempty"`
	InStock     bool    `gorm:"default:true" json:"inStock"`
	Featured    bool    `gorm:"default:false" json:"featured"`
	Limited     bool    `gorm:"default:false" json:"limited"`
	Description string  `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Dedicated) TableName() string { return "dedicated_servers" }
