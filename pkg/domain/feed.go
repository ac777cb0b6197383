package domain

import "time"

// Source is a feed watched by the keyword monitor
type Source struct {
	URL             string
	Platform        Platform
	Account         string
	Channel         string
	Flair           string
	NoSelfPromotion bool
	Keywords        []string
}

// ParsedFeed is a fetched feed with its entries
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Items       []ParsedItem
}

// ParsedItem is a single feed entry
type ParsedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Author      string
	Published   time.Time
}
