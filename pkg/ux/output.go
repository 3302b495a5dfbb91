// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"os"

	luxlog "github.com/luxfi/log"
	"github.com/mattn/go-isatty"
)

var Logger *UserLog

type UserLog struct {
	log    luxlog.Logger
	writer io.Writer
	color  bool
}

// NewUserLog installs the process-wide user logger once.
func NewUserLog(log luxlog.Logger, userwriter io.Writer) {
	if Logger == nil {
		Logger = NewUserLogger(log, userwriter)
	}
}

// NewUserLogger builds a user logger writing to userwriter. Glyphs are
// coloured only when userwriter is a terminal.
func NewUserLogger(log luxlog.Logger, userwriter io.Writer) *UserLog {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	color := false
	if f, ok := userwriter.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &UserLog{
		log:    log,
		writer: userwriter,
		color:  color,
	}
}

// Writer is where user-facing output goes.
func (ul *UserLog) Writer() io.Writer {
	return ul.writer
}

// PrintToUser prints msg directly to stdout (command output)
// Does NOT log to avoid duplication - logs should go to stderr separately
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
}

// Info logs an info message
func (ul *UserLog) Info(msg string, args ...interface{}) {
	ul.log.Info(fmt.Sprintf(msg, args...))
}

// PrintLineSeparator prints a line separator
func (ul *UserLog) PrintLineSeparator(msg ...string) {
	separator := "=========================================="
	if len(msg) > 0 && msg[0] != "" {
		separator = msg[0]
	}
	_, _ = fmt.Fprintln(ul.writer, separator)
	ul.log.Info(separator)
}

// Error logs an error message
func (ul *UserLog) Error(msg string, args ...interface{}) {
	ul.log.Error(fmt.Sprintf(msg, args...))
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, ul.glyph("✗", luxlog.Red.Wrap)+" "+formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, ul.glyph("✓", luxlog.Green.Wrap)+" "+formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintError prints a visible error message with ERROR prefix to the user
func (ul *UserLog) PrintError(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintf(ul.writer, "\nERROR: %s\n\n", formattedMsg)
	ul.log.Error(formattedMsg)
}

func (ul *UserLog) glyph(g string, colorize func(string) string) string {
	if !ul.color {
		return g
	}
	return colorize(g)
}
