package application

import (
	"fmt"
	"net/url"
	"strconv"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/pkg/validator"
)

// Postback actions
const (
	actionQuery        = "query"
	actionListFiles    = "list_files"
	actionViewCitation = "view_citation"
	actionDeleteFile   = "delete_file"
)

// postback is a parsed postback payload of the form action=<name>&key=value
type postback struct {
	Action  string `validate:"required"`
	Prompt  string
	Page    int `validate:"gte=0"`
	Store   string
	Num     int    `validate:"required_if=Action view_citation"`
	DocName string `validate:"required_if=Action delete_file"`
}

var postbackValidator = validator.New()

// parsePostback decodes and validates postback data.
// Returns domain.ErrInvalidRequest for malformed payloads.
func parsePostback(data string) (*postback, error) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	pb := &postback{
		Action:  values.Get("action"),
		Prompt:  values.Get("prompt"),
		Store:   values.Get("store"),
		DocName: values.Get("doc_name"),
	}

	if raw := values.Get("page"); raw != "" {
		if pb.Page, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("%w: page %q", domain.ErrInvalidRequest, raw)
		}
	}
	if raw := values.Get("num"); raw != "" {
		if pb.Num, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("%w: num %q", domain.ErrInvalidRequest, raw)
		}
	}

	if err := postbackValidator.ValidateStruct(pb); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return pb, nil
}

func queryData(prompt string) string {
	return encode(url.Values{"action": {actionQuery}, "prompt": {prompt}})
}

func listFilesData(page int, logicalID domain.LogicalStoreID) string {
	return encode(url.Values{"action": {actionListFiles}, "page": {strconv.Itoa(page)}, "store": {string(logicalID)}})
}

func viewCitationData(num int) string {
	return encode(url.Values{"action": {actionViewCitation}, "num": {strconv.Itoa(num)}})
}

func deleteFileData(documentName string) string {
	return encode(url.Values{"action": {actionDeleteFile}, "doc_name": {documentName}})
}

// encode keeps the action key first so payloads stay readable in logs
func encode(values url.Values) string {
	action := values.Get("action")
	values.Del("action")
	rest := values.Encode()
	if rest == "" {
		return "action=" + url.QueryEscape(action)
	}
	return "action=" + url.QueryEscape(action) + "&" + rest
}
