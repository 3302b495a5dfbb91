// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package etherscan

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-retryablehttp"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/pkg/constants"
)

var apiKeyParam = regexp.MustCompile(`(?i)(apikey=)[^&\s"']*`)

// redactAPIKey masks the apikey query parameter wherever it shows up in s.
func redactAPIKey(s string) string {
	return apiKeyParam.ReplaceAllString(s, "${1}"+constants.RedactedValue)
}

// redactedError keeps the wrapped chain for errors.Is but never prints the
// API key. Transport errors carry the full request URL.
type redactedError struct {
	err error
}

func (e redactedError) Error() string {
	return redactAPIKey(e.err.Error())
}

func (e redactedError) Unwrap() error {
	return e.err
}

// luxLogger adapts luxfi/log to retryablehttp.LeveledLogger.
type luxLogger struct {
	log luxlog.Logger
}

func (l luxLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, keysAndValues...)
}

func (l luxLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l luxLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l luxLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn(msg, keysAndValues...)
}

// scrubbingLogger masks the API key in everything retryablehttp logs, at
// every level. Request URLs show up as *url.URL, as "METHOD url" strings
// and inside errors.
type scrubbingLogger struct {
	next retryablehttp.LeveledLogger
}

func (l scrubbingLogger) Error(msg string, keysAndValues ...interface{}) {
	l.next.Error(redactAPIKey(msg), scrub(keysAndValues)...)
}

func (l scrubbingLogger) Info(msg string, keysAndValues ...interface{}) {
	l.next.Info(redactAPIKey(msg), scrub(keysAndValues)...)
}

func (l scrubbingLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.next.Debug(redactAPIKey(msg), scrub(keysAndValues)...)
}

func (l scrubbingLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.next.Warn(redactAPIKey(msg), scrub(keysAndValues)...)
}

func scrub(kv []interface{}) []interface{} {
	out := make([]interface{}, len(kv))
	for i, v := range kv {
		switch v := v.(type) {
		case string:
			out[i] = redactAPIKey(v)
		case error:
			out[i] = redactedError{v}
		case fmt.Stringer:
			out[i] = redactAPIKey(v.String())
		default:
			out[i] = v
		}
	}
	return out
}
