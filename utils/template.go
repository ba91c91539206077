package utils

import (
	"strings"

	"saasquatch/models"
)

// templateFields are the only tokens the renderer recognizes; anything else
// passes through literally.
var templateFields = []string{"name", "company", "title", "email"}

// RenderTemplate substitutes {name}, {company}, {title} and {email} in text
// with the contact's fields, using the empty string for absent fields. Empty
// input is returned unchanged. The function is total; it never fails.
func RenderTemplate(text string, contact models.Contact) string {
	if text == "" {
		return text
	}
	out := text
	for _, field := range templateFields {
		var val string
		switch field {
		case "name":
			val = contact.Name
		case "company":
			val = contact.Company
		case "title":
			val = contact.Title
		case "email":
			val = contact.Email
		}
		out = strings.ReplaceAll(out, "{"+field+"}", val)
	}
	return out
}
