// Package extract classifies inbound donor messages and pulls structured
// entities (UTR codes, amounts, phone numbers, names) out of free text.
package extract

import (
	"regexp"
	"strings"
)

// Intent is the coarse category of an inbound message.
type Intent string

const (
	IntentDonation        Intent = "donation_intent"
	IntentReceiptIssue    Intent = "receipt_issue"
	IntentUTRVerification Intent = "utr_verification"
	IntentVolunteer       Intent = "volunteer_inquiry"
	IntentTaxBenefit      Intent = "tax_benefit_inquiry"
	IntentProject         Intent = "project_inquiry"
	IntentOffice          Intent = "office_inquiry"
	IntentGeneral         Intent = "general_inquiry"
)

// Info holds entities extracted from a message. Empty string means absent.
type Info struct {
	UTR    string
	Amount string
	Phone  string
	Name   string
}

var (
	donationWords  = []string{"donate", "contribution", "give", "support", "contribute"}
	receiptWords   = []string{"receipt", "tax", "acknowledgment", "certificate", "80g"}
	missingWords   = []string{"didn't get", "haven't received", "missing", "where", "not received"}
	utrWords       = []string{"utr", "transaction", "payment", "confirm", "successful", "went through", "gone through"}
	volunteerWords = []string{"volunteer", "volunteering", "help out", "join", "participate"}
	taxWords       = []string{"tax benefit", "80g", "deduction", "tax exemption"}
	projectWords   = []string{"project", "campaign", "initiative", "program", "what do you do"}
	officeWords    = []string{"office", "location", "address", "visit", "come to"}
)

// Classify returns the intent of a message. Categories are evaluated in a
// fixed priority order; the first match wins.
func Classify(text string) Intent {
	q := strings.ToLower(text)

	switch {
	case containsAny(q, donationWords):
		return IntentDonation
	case containsAny(q, receiptWords) && containsAny(q, missingWords):
		return IntentReceiptIssue
	case containsAny(q, utrWords):
		return IntentUTRVerification
	case containsAny(q, volunteerWords):
		return IntentVolunteer
	case containsAny(q, taxWords):
		return IntentTaxBenefit
	case containsAny(q, projectWords):
		return IntentProject
	case containsAny(q, officeWords):
		return IntentOffice
	default:
		return IntentGeneral
	}
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

var (
	utrPattern = regexp.MustCompile(`(?i)UTR\d+`)

	// Amount surface forms, tried in order: symbol-prefixed, "Rs."-prefixed,
	// "N rupees"-suffixed.
	amountSymbol = regexp.MustCompile(`₹\s*(\d+)`)
	amountRs     = regexp.MustCompile(`Rs\.?\s*(\d+)`)
	amountRupees = regexp.MustCompile(`(?i)(\d+)\s*rupees`)

	// Indian mobile numbers, with or without country code and internal spacing.
	phoneCompact = regexp.MustCompile(`(\+91\s?)?[789]\d{9}`)
	phoneSpaced  = regexp.MustCompile(`(\+91\s?)?[789]\d{4}\s?\d{5}`)

	nameIndicators = []string{"name is", "this is", "called", "speaking", "named", "by the name"}

	// First names of donors already in the knowledge base. If one appears in
	// the text it overrides any indicator-based extraction.
	knownFirstNames = []string{"Arvin", "Rajesh", "Priya", "Amit", "Sneha"}
)

// Extract pulls structured entities out of a message. Each entity is matched
// independently of the others.
func Extract(text string) Info {
	info := Info{
		UTR: utrPattern.FindString(text),
	}

	if m := amountSymbol.FindStringSubmatch(text); m != nil {
		info.Amount = m[1]
	} else if m := amountRs.FindStringSubmatch(text); m != nil {
		info.Amount = m[1]
	} else if m := amountRupees.FindStringSubmatch(text); m != nil {
		info.Amount = m[1]
	}

	if m := phoneCompact.FindString(text); m != "" {
		info.Phone = m
	} else if m := phoneSpaced.FindString(text); m != "" {
		info.Phone = m
	}

	info.Name = extractName(text)
	return info
}

func extractName(text string) string {
	lower := strings.ToLower(text)

	var name string
	for _, indicator := range nameIndicators {
		idx := strings.Index(lower, indicator)
		if idx < 0 {
			continue
		}
		rest := strings.Fields(lower[idx+len(indicator):])
		if len(rest) == 0 {
			continue
		}
		candidate := capitalize(rest[0])
		// Skip short fragments like "a" or "mr".
		if len(candidate) > 2 {
			name = candidate
			break
		}
	}

	for _, known := range knownFirstNames {
		if strings.Contains(lower, strings.ToLower(known)) {
			return known
		}
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
