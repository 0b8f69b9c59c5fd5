package models

import "time"

type WastageUnit string

const (
	UnitKilogram   WastageUnit = "kg"
	UnitGram       WastageUnit = "g"
	UnitLitre      WastageUnit = "L"
	UnitMillilitre WastageUnit = "ml"
	UnitPiece      WastageUnit = "units"
)

// WastageUnits: kayıt sırasında kabul edilen birimler (kapalı küme)
var WastageUnits = []WastageUnit{UnitKilogram, UnitGram, UnitLitre, UnitMillilitre, UnitPiece}

func (u WastageUnit) Valid() bool {
	for _, v := range WastageUnits {
		if v == u {
			return true
		}
	}
	return false
}

type WastageReason string

const (
	ReasonSpoilage         WastageReason = "Spoilage"
	ReasonPreparationWaste WastageReason = "Preparation Waste"
	ReasonCustomerLeftover WastageReason = "Customer Leftover"
	ReasonExpired          WastageReason = "Expired"
	ReasonOverproduction   WastageReason = "Overproduction"
)

// WastageReasons: sıralı liste, grafikler ve sebep toplamları bu sırayı izler
var WastageReasons = []WastageReason{
	ReasonSpoilage,
	ReasonPreparationWaste,
	ReasonCustomerLeftover,
	ReasonExpired,
	ReasonOverproduction,
}

func (r WastageReason) Valid() bool {
	for _, v := range WastageReasons {
		if v == r {
			return true
		}
	}
	return false
}

// WastageEntry: tek bir zayiat kaydı. Oluşturulduktan sonra değişmez, sadece silinebilir.
type WastageEntry struct {
	ID        string        `gorm:"primaryKey;size:64" json:"id"`
	Item      string        `gorm:"size:200;not null" json:"item"`
	Quantity  float64       `gorm:"not null" json:"quantity"`
	Unit      WastageUnit   `gorm:"size:10;not null" json:"unit"`
	Reason    WastageReason `gorm:"size:40;index;not null" json:"reason"`
	Date      time.Time     `gorm:"index;not null" json:"date"` // kayıt anı, kullanıcı değiştiremez
	UserID    string        `gorm:"size:128;index;not null" json:"user_id"`
	Cost      *float64      `json:"cost,omitempty"` // opsiyonel maliyet tahmini
	CreatedAt time.Time     `json:"-"`
}

// HasCost: maliyet girilmiş mi?
func (e WastageEntry) HasCost() bool {
	return e.Cost != nil
}

// Donation: fazla üretim (Overproduction) kaydı + kaydı giren restoran bilgisi
type Donation struct {
	WastageEntry
	Donor DonorInfo `json:"donor"`
}

type DonorInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
