package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// OnlyDigits strips everything but 0-9, e.g. "+55 (11) 98765-4321" -> "5511987654321".
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// WhatsappURL builds a wa.me deep link with a prefilled message.
// It returns "" when number has no digits.
func WhatsappURL(number, message string) string {
	digits := OnlyDigits(number)
	if digits == "" {
		return ""
	}
	link := "https://wa.me/" + digits
	if message == "" {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// InterestMessage is the text prefilled when a visitor asks about a product.
func InterestMessage(siteName, productTitle, price string) string {
	return fmt.Sprintf("Olá! Vi o produto \"%s\" (%s) no %s e tenho interesse!", productTitle, price, siteName)
}
