package models

import "time"

// Fish is a single tacklebox entry
type Fish struct {
	ID       string    `bson:"id" json:"id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Name     string    `bson:"name" json:"name"`
	Size     float64   `bson:"size" json:"size"`
	Points   int       `bson:"points" json:"points"`
	Color    string    `bson:"color" json:"color"`
	CaughtAt time.Time `bson:"caught_at" json:"caught_at"`
}

// FishInput is the body of POST /tacklebox/:user_id/add-fish
type FishInput struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Points int     `json:"points"`
	Color  string  `json:"color"`
}

// Tacklebox is a page of a player's most recent catches. Count is the size of
// this page, not the player's lifetime total.
type Tacklebox struct {
	Fish  []Fish `json:"fish"`
	Count int    `json:"count"`
}
