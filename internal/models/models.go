package models

import "time"

// User represents a Telegram user that has queried the bot
type User struct {
	ID         int64     `bson:"_id" json:"telegram_id"`
	Username   string    `bson:"username" json:"username"`
	FirstName  string    `bson:"first_name" json:"first_name"`
	FirstSeen  time.Time `bson:"first_seen" json:"first_seen"`
	QueryCount int64     `bson:"query_count" json:"query_count"`
}

// Totals aggregates usage across all users
type Totals struct {
	Users   int64 `bson:"users"`
	Queries int64 `bson:"queries"`
}
