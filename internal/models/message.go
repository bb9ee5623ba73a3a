package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	Subject    *string   `db:"subject" json:"subject"`
	Content    string    `db:"content" json:"content"`
	IsRead     bool      `db:"is_read" json:"is_read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SendMessageRequest is the payload for sending a message.
type SendMessageRequest struct {
	ReceiverID int64   `json:"receiver_id" validate:"required"`
	Subject    *string `json:"subject"`
	Content    string  `json:"content" validate:"required"`
}

// MessageRow is the mailbox view joined with both participants.
type MessageRow struct {
	ID           int64     `db:"id" json:"id"`
	SenderID     int64     `db:"sender_id" json:"sender_id"`
	ReceiverID   int64     `db:"receiver_id" json:"receiver_id"`
	Subject      *string   `db:"subject" json:"subject"`
	Content      string    `db:"content" json:"content"`
	IsRead       bool      `db:"is_read" json:"is_read"`
	SenderName   *string   `db:"sender_name" json:"sender_name"`
	ReceiverName *string   `db:"receiver_name" json:"receiver_name"`
	IsFromMe     bool      `db:"-" json:"is_from_me"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
