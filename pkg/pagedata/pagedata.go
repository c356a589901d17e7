// Package pagedata extracts the data Instagram embeds in its HTML pages:
// the window._sharedData payload, the CSRF token and the fields of the
// two-factor challenge form.
package pagedata

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
)

const sharedDataPrefix = "window._sharedData = "

// ResendCodeMessage is shown on the challenge page when a security code was
// rejected
const ResendCodeMessage = "Please check the code we sent you and try again"

var csrfTokenPattern = regexp.MustCompile(`"csrf_token":"(.*?)"`)

func parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, igerrors.NewParsingError("failed to parse HTML page", err)
	}
	return doc, nil
}

// ExtractSharedData decodes the window._sharedData object of a page
func ExtractSharedData(body []byte) (model.Node, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, err
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, sharedDataPrefix)
		if idx < 0 {
			return true
		}
		payload = strings.TrimSpace(text[idx+len(sharedDataPrefix):])
		return false
	})

	if payload == "" {
		return nil, igerrors.NewParsingError("page carries no shared data", nil)
	}
	payload = strings.TrimSuffix(payload, ";")

	node, err := model.DecodeNode([]byte(payload))
	if err != nil {
		return nil, igerrors.NewParsingError("failed to decode shared data", err)
	}
	return node, nil
}

// ExtractCSRFToken finds the csrf_token literal in a page body, falling back
// to the csrftoken cookie. It returns "" when neither is present.
func ExtractCSRFToken(body []byte, cookies map[string]string) string {
	if m := csrfTokenPattern.FindSubmatch(body); m != nil && len(m[1]) > 0 {
		return string(m[1])
	}
	return cookies["csrftoken"]
}

// RhxGis returns the request-signing seed published in the shared data
func RhxGis(shared model.Node) string {
	return shared.String("rhx_gis")
}

// HasSecurityCodeField reports whether the page offers the challenge code input
func HasSecurityCodeField(body []byte) bool {
	doc, err := parse(body)
	if err != nil {
		return false
	}
	return doc.Find(`input[name="security_code"]`).Length() > 0
}

// HasResendCodeMessage reports whether the page rejected a security code
func HasResendCodeMessage(body []byte) bool {
	return bytes.Contains(body, []byte(ResendCodeMessage))
}
