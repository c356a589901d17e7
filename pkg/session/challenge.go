package session

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/pagedata"
)

// challenge answers the two-factor checkpoint. cookies is updated with
// every cookie the checkpoint pages set.
func (m *Manager) challenge(ctx context.Context, checkpointPath string, cookies map[string]string, verifier Verifier) error {
	if checkpointPath == "" {
		return igerrors.NewAuthError("checkpoint required but no checkpoint url was given", 400, "")
	}
	checkpointURL := m.resolver.WebBase + checkpointPath

	headers := HeaderSet{
		"cookie":      cookieString(cookies, "; "),
		"referer":     m.resolver.URL(endpoints.Login, nil),
		"x-csrftoken": cookies["csrftoken"],
	}
	if m.userAgent != "" {
		headers["user-agent"] = m.userAgent
	}

	page, err := m.transport.Get(ctx, checkpointURL, headers)
	if err != nil {
		return challengeFailure("failed to load verification page", err)
	}
	mergeCookies(cookies, page.Cookies)

	if shared, err := pagedata.ExtractSharedData(page.Body); err == nil {
		if choices := challengeChoices(shared); len(choices) > 0 {
			choice, err := verifier.ChooseMethod(choices)
			if err != nil {
				return challengeFailure("failed to choose verification method", err)
			}

			page, err = m.transport.Post(ctx, checkpointURL, headers, url.Values{"choice": {choice}})
			if err != nil {
				return challengeFailure("failed to submit verification method", err)
			}
			mergeCookies(cookies, page.Cookies)
		}
	}

	if !pagedata.HasSecurityCodeField(page.Body) {
		return igerrors.NewAuthError("two-factor verification page offers no security code field", page.StatusCode, string(page.Body))
	}

	code, err := verifier.ProvideCode()
	if err != nil {
		return challengeFailure("failed to read security code", err)
	}

	final, err := m.transport.Post(ctx, checkpointURL, headers, url.Values{
		"csrfmiddlewaretoken": {cookies["csrftoken"]},
		"verify":              {"Verify Account"},
		"security_code":       {code},
	})
	if err != nil {
		return challengeFailure("failed to submit security code", err)
	}

	if !final.OK() || pagedata.HasResendCodeMessage(final.Body) || pagedata.HasSecurityCodeField(final.Body) {
		return igerrors.NewAuthError("security code was not accepted", final.StatusCode, string(final.Body))
	}

	mergeCookies(cookies, final.Cookies)

	var body loginResponse
	if json.Unmarshal(final.Body, &body) == nil && body.Authenticated != nil && !*body.Authenticated {
		return igerrors.NewAuthError("two-factor verification did not authenticate", final.StatusCode, string(final.Body))
	}
	if cookies["sessionid"] == "" {
		return igerrors.NewAuthError("two-factor verification established no session", final.StatusCode, string(final.Body))
	}
	return nil
}

func challengeFailure(step string, err error) error {
	e := igerrors.NewAuthError(fmt.Sprintf("%s: %v", step, err), 0, "")
	e.Err = err
	return e
}

// challengeChoices lists the verification methods. The structured form
// lives under extraData; older pages only expose flat email and phone
// fields.
func challengeChoices(shared model.Node) []Choice {
	challenge := shared.Node("entry_data", "Challenge", 0)
	if challenge == nil {
		return nil
	}

	var choices []Choice
	for _, v := range challenge.Nodes("extraData", "content", 3, "fields", 0, "values") {
		choices = append(choices, Choice{Label: v.String("label"), Value: v.String("value")})
	}
	if len(choices) > 0 {
		return choices
	}

	if email := challenge.String("fields", "email"); email != "" {
		choices = append(choices, Choice{Label: "Email: " + email, Value: "1"})
	}
	if phone := challenge.String("fields", "phone_number"); phone != "" {
		choices = append(choices, Choice{Label: "Phone: " + phone, Value: "0"})
	}
	return choices
}
