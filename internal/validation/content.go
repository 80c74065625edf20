package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/batch26/keepsake/internal/model"
)

const (
	MaxMessageLength   = 500
	MaxSignatureLength = 280
	MaxQuoteLength     = 280
	MaxMajorLength     = 100
	MaxCaptionLength   = 200
)

func ValidateMessage(text string, style model.PaperStyle) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("message is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return invalidf("message is too long (max %d characters)", MaxMessageLength)
	}
	if !style.Valid() {
		return invalidf("unknown paper style %q", style)
	}
	return nil
}

func ValidateSignature(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalid("signature is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxSignatureLength {
		return invalidf("signature is too long (max %d characters)", MaxSignatureLength)
	}
	return nil
}

func ValidateCaption(caption string) error {
	if utf8.RuneCountInString(caption) > MaxCaptionLength {
		return invalidf("caption is too long (max %d characters)", MaxCaptionLength)
	}
	return nil
}

// ValidateProfile checks a yearbook profile before it is upserted.
func ValidateProfile(s *model.Student) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return invalid("profile id is required")
	}

	err := ValidateName(s.Name)
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(s.Major) > MaxMajorLength {
		return invalidf("major is too long (max %d characters)", MaxMajorLength)
	}
	if utf8.RuneCountInString(s.Quote) > MaxQuoteLength {
		return invalidf("quote is too long (max %d characters)", MaxQuoteLength)
	}

	links := map[string]string{
		"linkedin":  s.LinkedIn,
		"instagram": s.Instagram,
		"twitter":   s.Twitter,
	}
	for network, link := range links {
		err = validateSocialLink(link)
		if err != nil {
			return fmt.Errorf("%s: %w", network, err)
		}
	}

	return nil
}

// validateSocialLink accepts an empty value, the "#" placeholder or an http(s) URL.
func validateSocialLink(link string) error {
	if link == "" || link == "#" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("link must be an http or https URL")
	}
	return nil
}
