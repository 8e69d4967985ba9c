package domain

// CookieConsent mirrors the blob the storefront keeps per visitor. Nothing
// external reads it; the format may change freely.
type CookieConsent struct {
	Accepted   bool   `json:"accepted"`
	AnsweredAt string `json:"answeredAt"`
}
