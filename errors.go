/*
 * errors.go, part of convergo.
 *
 * Copyright 2025 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package conv

import (
	"errors"
	"fmt"
	"strings"
)

// Decorator is implemented by all the errors in this module. The Decorate method allows to add and retrieve info from the
// error, without changing it's type. Each call returns the decoration trail resulting from the current call.
// If passed an empty string, it just returns the current trail.
type Decorator interface {
	error
	Decorate(string) []string
}

//ErrKind tells what went wrong, so the commands can decide whether to abort or just move on.
type ErrKind int

const (
	KindNotFound   ErrKind = iota //the data file does not exist
	KindParse                     //a row or column could not be read
	KindEmpty                     //the file has no data rows
	KindSkipped                   //not enough distinct values to sweep over
	KindDuplicate                 //repeated (kpoint, cutoff) pair in a pivot
	KindIncomplete                //missing cell in a pivot
	KindIO                        //anything else from the OS
)

func (k ErrKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse"
	case KindEmpty:
		return "empty"
	case KindSkipped:
		return "skipped"
	case KindDuplicate:
		return "duplicate"
	case KindIncomplete:
		return "incomplete"
	default:
		return "io"
	}
}

//Error is the general structure for convergence data errors. It fullfills Decorator.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	kind     ErrKind
	deco     *[]string
	err      error //underlying error, if any
}

func newError(kind ErrKind, filename, message, caller string, wrapped ...error) Error {
	deco := []string{caller}
	E := Error{message: message, filename: filename, kind: kind, deco: &deco}
	if len(wrapped) > 0 {
		E.err = wrapped[0]
	}
	return E
}

func (err Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s: %s", err.filename, err.message)
}

//Message returns the error message without the file name.
func (err Error) Message() string { return err.message }

//Unwrap returns the OS or strconv error behind this one, if any.
func (err Error) Unwrap() error { return err.err }

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if err.deco == nil {
		return nil
	}
	if deco != "" {
		*err.deco = append(*err.deco, deco)
	}
	return *err.deco
}

//Trail returns the decoration trail joined with arrows, innermost call first.
func (err Error) Trail() string {
	return strings.Join(err.Decorate(""), " <- ")
}

//FileName returns the file to which the error is associated, if any.
func (err Error) FileName() string { return err.filename }

func (err Error) Kind() ErrKind { return err.kind }

func (err Error) NotFound() bool   { return err.kind == KindNotFound }
func (err Error) Empty() bool      { return err.kind == KindEmpty }
func (err Error) Skipped() bool    { return err.kind == KindSkipped }
func (err Error) Duplicate() bool  { return err.kind == KindDuplicate }
func (err Error) Incomplete() bool { return err.kind == KindIncomplete }

//Critical is true for the errors that should abort a run.
//Skipped sweeps are not critical, the next plot can still be produced.
func (err Error) Critical() bool { return err.kind != KindSkipped }

//errDecorate decorates err with the caller's name before returning it,
//if err implements Decorator. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var d Decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}

//IsKind reports whether err is, or wraps, an Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var E Error
	if errors.As(err, &E) {
		return E.kind == kind
	}
	return false
}

//UserMessage returns the text to show a user for err. The file name is
//prepended only if the message doesn't already mention it.
func UserMessage(err error) string {
	var E Error
	if errors.As(err, &E) && strings.Contains(E.message, E.filename) {
		return E.Message()
	}
	return err.Error()
}
