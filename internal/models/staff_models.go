package models

import "time"

// StaffMember is one employee in the ledger. EID is the stable identity used
// by the timekeeping system; CardID is the swappable pay-card badge and may be
// reassigned over time but never held by two active members at once.
type StaffMember struct {
	Name     string    `json:"name" db:"name"`
	CardID   string    `json:"card_id" db:"card_id"`
	EID      int64     `json:"eid" db:"eid"`
	Created  time.Time `json:"created" db:"created"`
	Modified time.Time `json:"modified" db:"modified"`
}

// StaffNameEID is the trimmed listing shape used by pickers on the frontend.
type StaffNameEID struct {
	Name string `json:"name" db:"name"`
	EID  int64  `json:"eid" db:"eid"`
}

// TippedDay is one persisted night outcome for one staff member and role.
// Immutable once written; a resubmission for the same date replaces the whole
// date's set rather than editing rows.
type TippedDay struct {
	Name               string    `json:"name" db:"name"`
	Role               string    `json:"role" db:"role"`
	NetTips            Money     `json:"net_tips" db:"net_tips"`
	TotalPayForNight   Money     `json:"total_pay_for_night" db:"total_pay_for_night"`
	HourlyPayForNight  Money     `json:"hourly_pay_for_night" db:"hourly_pay_for_night"`
	TippedHourForNight float64   `json:"tipped_hour_for_night" db:"tipped_hour_for_night"`
	Duration           float64   `json:"duration" db:"duration"`
	EID                int64     `json:"eid" db:"eid"`
	Date               Date      `json:"date" db:"date"`
	Created            time.Time `json:"created" db:"created"`
	Modified           time.Time `json:"modified" db:"modified"`
}

// TipSummary is the per-night rollup line shown on a member detail page.
type TipSummary struct {
	Date    Date  `json:"date" db:"date"`
	NetTips Money `json:"net_tips" db:"net_tips"`
}

// MemberDetail is the identity slice of StaffMember used in detail responses.
type MemberDetail struct {
	Name   string `json:"name"`
	EID    int64  `json:"eid"`
	CardID string `json:"card_id"`
}

// MemberDetailResponse combines a member's identity with their tip history.
type MemberDetailResponse struct {
	StaffMember MemberDetail `json:"staff_member"`
	Tips        []TipSummary `json:"tips"`
}

// TipStats is the read-only historical rollup for one employee. Never
// persisted; recomputed from TippedDay rows on every read.
type TipStats struct {
	EID              int64   `json:"eid"`
	Nights           int     `json:"nights"`
	NetTipsTotal     Money   `json:"net_tips_total"`
	TotalPay         Money   `json:"total_pay"`
	TotalHours       float64 `json:"total_hours"`
	AverageHourlyPay Money   `json:"average_hourly_pay"`
}
