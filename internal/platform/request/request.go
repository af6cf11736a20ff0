// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and body decoding so handlers
share one error vocabulary.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/taibuivan/grimoire/internal/platform/constants"
	"github.com/taibuivan/grimoire/internal/platform/validate"
)

// maxBodyBytes bounds catalog write payloads.
const maxBodyBytes = 1 << 20

// supportedLanguages lists the display languages in preference order.
// The first entry is the fallback.
var supportedLanguages = []language.Tag{language.English, language.Spanish}

var languageMatcher = language.NewMatcher(supportedLanguages)

/*
DecodeJSON reads the request body into target.

Unknown fields are rejected so typos in write payloads surface as 400s.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Language negotiates the display language from the Accept-Language header.

An explicit "lang" query parameter wins over the header. The result is a
base language code ("en", "es"); unsupported or missing values yield "en".
*/
func Language(request *http.Request) string {
	preferred := request.URL.Query().Get("lang")
	if preferred == "" {
		preferred = request.Header.Get(constants.HeaderLanguage)
	}
	return MatchLanguage(preferred)
}

// MatchLanguage maps an Accept-Language style value to a supported base code.
func MatchLanguage(preferred string) string {
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		return baseCode(supportedLanguages[0])
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return baseCode(supportedLanguages[0])
	}
	return baseCode(supportedLanguages[index])
}

func baseCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
