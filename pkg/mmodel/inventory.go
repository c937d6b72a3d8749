package mmodel

import "time"

// Inventory is the single total/used counter row for a Feature. It is
// created alongside its Feature (zeroed) and afterwards only ever written by
// reconcile (total, used); booking admission locks and reads it but does not
// change it.
type Inventory struct {
	ID        string    `json:"id"`
	FeatureID string    `json:"featureId"`
	Total     int       `json:"total"`
	Used      int       `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Available reports how many units remain once existing usage, bookings and
// the feature's reserved headroom are accounted for.
func (i Inventory) Available(bookedQuantity, reserved int) int {
	return i.Total - i.Used - bookedQuantity - reserved
}
