package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptIDPrefix prefixes generated receipt identifiers.
const ReceiptIDPrefix = "RCPT-"

// City is one of the administrative regions a shipment can be tied to.
type City string

const (
	CityErbil        City = "erbil"
	CityDuhok        City = "duhok"
	CitySulaymaniyah City = "sulaymaniyah"
	CityNineveh      City = "nineveh"
	CityAnbar        City = "anbar"
	CityBaghdad      City = "baghdad"
	CityBasra        City = "basra"
)

// Arabic labels as shown in the back-office UI.
var cityLabels = map[City]string{
	CityErbil:        "أربيل",
	CityDuhok:        "دهوك",
	CitySulaymaniyah: "سليمانية",
	CityNineveh:      "نينوى",
	CityAnbar:        "أنبار",
	CityBaghdad:      "بغداد",
	CityBasra:        "البصرة",
}

// Cities lists the supported regions in display order.
func Cities() []City {
	return []City{CityErbil, CityDuhok, CitySulaymaniyah, CityNineveh, CityAnbar, CityBaghdad, CityBasra}
}

// ParseCity accepts a canonical code (case-insensitive) or its Arabic label.
func ParseCity(s string) (City, error) {
	s = strings.TrimSpace(s)

	if c := City(strings.ToLower(s)); cityLabels[c] != "" {
		return c, nil
	}

	for c, label := range cityLabels {
		if label == s {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCity, s)
}

// Label returns the Arabic display label.
func (c City) Label() string { return cityLabels[c] }

// IsValid reports whether c is a supported region.
func (c City) IsValid() bool { return cityLabels[c] != "" }

// Receipt is money owed by a client for a shipment. It increases the
// client's balance.
type Receipt struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Date      Date                `json:"date"`
	Driver    string              `json:"driver"`
	Car       string              `json:"car"`
	City      City                `json:"city"`
	Note      string              `json:"note"`
	Amount    decimal.NullDecimal `json:"amount"`
	CreatedAt time.Time           `json:"created_at"`
}

// ReceiptFields is the raw, user-supplied part of a receipt.
type ReceiptFields struct {
	Date   string
	Driver string
	Car    string
	City   string
	Note   string
	Amount string
}

// NewReceipt validates fields and builds a receipt for clientID.
func NewReceipt(id, clientID string, fields ReceiptFields, now time.Time) (*Receipt, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrMissingClientID
	}

	r := &Receipt{ID: id, ClientID: clientID, CreatedAt: now}
	if err := r.Apply(fields); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates fields and, when all are valid, replaces the editable
// part of the receipt. On error the receipt is left untouched.
func (r *Receipt) Apply(fields ReceiptFields) error {
	date, err := ParseDate(fields.Date)
	if err != nil {
		return err
	}

	if err := ValidateRequired(fields.Driver, ErrMissingDriver); err != nil {
		return err
	}

	if err := ValidateRequired(fields.Car, ErrMissingCar); err != nil {
		return err
	}

	city, err := ParseCity(fields.City)
	if err != nil {
		return err
	}

	if err := ValidateLength("note", fields.Note, MaxNoteLength); err != nil {
		return err
	}

	amount, err := ParseAmount(fields.Amount)
	if err != nil {
		return err
	}

	if err := ValidateReceiptAmount(amount); err != nil {
		return err
	}

	r.Date = date
	r.Driver = strings.TrimSpace(fields.Driver)
	r.Car = strings.TrimSpace(fields.Car)
	r.City = city
	r.Note = strings.TrimSpace(fields.Note)
	r.Amount = decimal.NewNullDecimal(amount)

	return nil
}
