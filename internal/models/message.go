package models

// Message is an inbound contact inquiry. Only Read ever changes.
type Message struct {
	ID      int64  `json:"id" yaml:"id"`
	From    string `json:"from" yaml:"from"`
	Subject string `json:"subject" yaml:"subject"`
	Date    string `json:"date" yaml:"date"`
	Read    bool   `json:"read" yaml:"read"`
	Body    string `json:"body" yaml:"body"`
}
