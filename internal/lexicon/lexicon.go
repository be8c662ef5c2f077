// Package lexicon holds the static word lists that drive detection. The
// lists are plain data: the classifier and scorer receive them at
// construction, so deployments (and tests) can swap them without touching
// detection logic.
package lexicon

// Lexicon bundles the keyword and brand lists plus the subset of terms used
// to query the CT log aggregator. Treat a Lexicon as immutable once built.
type Lexicon struct {
	// Keywords are lowercase substrings that flag a domain when they occur
	// anywhere in it, in match-priority order.
	Keywords []string

	// Brands are lowercase brand tokens compared against a domain's base
	// label for typosquatting, in comparison order.
	Brands []string

	// QueryTerms is the subset of keywords and brands most indicative of
	// phishing, used as CT log search terms.
	QueryTerms []string
}

// Default returns the built-in lexicon.
func Default() Lexicon {
	return Lexicon{
		Keywords: []string{
			// Authentication
			"login", "signin", "sign-in", "logon", "log-on", "authenticate",
			"verification", "verify", "confirm", "validate",

			// Security
			"secure", "security", "protected", "safety", "safe",
			"ssl", "https", "encryption",

			// Financial
			"bank", "banking", "payment", "wallet", "crypto", "bitcoin", "ethereum",
			"finance", "transfer", "wire", "invoice", "billing", "account",

			// Support/Service
			"support", "helpdesk", "service", "customer", "help", "assistance",
			"recovery", "restore", "unlock", "suspended", "disabled",

			// Urgency triggers
			"urgent", "alert", "warning", "notice", "update", "action", "required",
			"immediately", "expire", "expired", "limited",

			// Credentials
			"password", "passwd", "credential", "reset", "recover",
			"otp", "token", "2fa", "mfa",

			// Common phishing terms
			"webmail", "mailbox", "outlook", "office365", "microsoft365",
			"icloud", "appleid", "google-", "facebook-", "instagram-",
		},
		Brands: []string{
			"paypal", "amazon", "apple", "google", "microsoft", "facebook",
			"instagram", "twitter", "netflix", "spotify", "dropbox", "linkedin",
			"chase", "wellsfargo", "bankofamerica", "citibank", "usbank",
			"coinbase", "binance", "kraken", "metamask", "opensea",
			"outlook", "office365", "onedrive", "sharepoint", "teams",
			"icloud", "appstore", "itunes", "imessage",
			"whatsapp", "telegram", "signal", "discord", "slack",
			"adobe", "zoom", "webex", "docusign", "salesforce",
			"fedex", "ups", "usps", "dhl",
			"att", "verizon", "tmobile", "comcast", "xfinity",
		},
		QueryTerms: []string{
			"login", "signin", "secure", "verify", "account",
			"paypal", "amazon", "apple", "google", "microsoft",
			"bank", "wallet", "crypto", "support", "password",
		},
	}
}
