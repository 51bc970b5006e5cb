package models

import "time"

// Wine is one product on the commission-eligible wine list.
type Wine struct {
	Name         string  `json:"name" db:"name"`
	BasePrice    Money   `json:"base_price" db:"base_price"`
	DisplayPrice *string `json:"display_price,omitempty" db:"display_price"`
	ProductID    int64   `json:"product_id" db:"product_id"`
}

// Commission is one wine-sale commission owed to a staff member. Created on a
// sale event with its own lifecycle; never derived from tip data.
type Commission struct {
	Name      string `json:"name"`
	Wine      string `json:"wine"`
	Amount    Money  `json:"amount"`
	ProductID int64  `json:"product_id"`
	Date      Date   `json:"date"`
}

// CommissionRecord is the stored form, keyed by (eid, product_id, date).
type CommissionRecord struct {
	ID        int64     `json:"id" db:"id"`
	EID       int64     `json:"eid" db:"eid"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Amount    Money     `json:"amount" db:"amount"`
	Date      Date      `json:"date" db:"date"`
	Created   time.Time `json:"created" db:"created"`
	Modified  time.Time `json:"modified" db:"modified"`
}
