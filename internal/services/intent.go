package services

import "strings"

// IntentClassifier decides whether a conversational turn asks for a ticket.
type IntentClassifier interface {
	IsTicketRequest(text string) bool
}

var defaultTicketPhrases = []string{
	"generate ticket",
	"create ticket",
	"book ticket",
	"new ticket",
	"issue ticket",
	"make ticket",
}

// KeywordClassifier matches any phrase as a case-insensitive substring.
// An empty Phrases list uses the built-in set.
type KeywordClassifier struct {
	Phrases []string
}

func (k KeywordClassifier) IsTicketRequest(text string) bool {
	phrases := k.Phrases
	if len(phrases) == 0 {
		phrases = defaultTicketPhrases
	}
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
