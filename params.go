package dispatch

import (
	"strings"

	"github.com/bizmgr/dispatch/internal/core"
)

// Provider-recognized parameter field names.
const (
	paramToEmail     = "to_email"
	paramToName      = "to_name"
	paramFromEmail   = "from_email"
	paramFromName    = "from_name"
	paramSubject     = "subject"
	paramMessage     = "message"
	paramMessageHTML = "message_html"
	paramReplyTo     = "reply_to"
	paramCCEmails    = "cc_emails"
	paramBCCEmails   = "bcc_emails"
)

// MapParameters builds the flat provider parameter map from a validated
// request. The mapping is deterministic; the message parameter carries
// the raw body (rendering the body is the provider template's concern,
// the rendered variant travels separately under message_html).
//
// cc_emails and bcc_emails are only added when the source lists are
// non-empty, matching the omit-rather-than-empty contract.
func MapParameters(req *EmailRequest, sender SenderIdentity) TemplateParameters {
	fromName := sender.Name
	fromEmail := sender.Email
	if req.From != "" {
		fromName = req.From
		fromEmail = req.From
	}

	replyTo := req.ReplyTo
	if replyTo == "" {
		replyTo = req.From
	}
	if replyTo == "" {
		replyTo = sender.Email
	}

	params := TemplateParameters{
		paramToEmail:   req.To,
		paramToName:    core.LocalPart(req.To),
		paramFromName:  fromName,
		paramFromEmail: fromEmail,
		paramSubject:   req.Subject,
		paramMessage:   req.Body,
		paramReplyTo:   replyTo,
	}
	params.SetIfPresent(paramCCEmails, strings.Join(req.CC, ", "))
	params.SetIfPresent(paramBCCEmails, strings.Join(req.BCC, ", "))
	return params
}

// mapTemplateParameters builds the parameter map for a template send:
// caller-supplied variables merged over a base containing only the
// destination, with caller variables winning on collision.
func mapTemplateParameters(req *TemplateSend) TemplateParameters {
	params := TemplateParameters{paramToEmail: req.To}
	params.Merge(req.Variables)
	return params
}
