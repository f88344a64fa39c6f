// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Splyse Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type StaleError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ProcessError("already initialised")
	ApprovalToSelf          = InvalidError("approval spender is the owner")
	CannotDecodeAddress     = InvalidError("cannot decode address")
	CertificateFileExists   = ExistsError("certificate file already exists")
	ChecksumMismatch        = InvalidError("checksum mismatch")
	CorruptOwnershipRecord  = ProcessError("corrupt ownership record")
	DataInconsistent        = ProcessError("data inconsistent")
	ExchangeAlreadyListed   = ExistsError("exchange already listed")
	ExchangeNotListed       = NotFoundError("exchange not listed")
	InvalidAddress          = InvalidError("invalid address")
	InvalidCount            = InvalidError("invalid count")
	InvalidCursor           = InvalidError("invalid cursor")
	InvalidIPAddress        = InvalidError("invalid ip address")
	InvalidSignature        = InvalidError("invalid signature")
	InvalidStructPointer    = InvalidError("invalid struct pointer")
	KeyFileExists           = ExistsError("key file already exists")
	MissingParameters       = InvalidError("missing parameters")
	MissingProperties       = InvalidError("missing properties")
	MissingURI              = InvalidError("missing uri")
	NoApproval              = NotFoundError("no approval exists for this token")
	NotAdministrator        = PermissionError("not the administrator")
	NotApprovedSpender      = PermissionError("spend not approved")
	NotAuthorised           = PermissionError("not authorised")
	NotInitialised          = ProcessError("not initialised")
	NotTokenOwner           = PermissionError("not the token owner")
	OwnershipIndexMismatch  = ProcessError("ownership index mismatch")
	RateLimiting            = ProcessError("rate limiting")
	SignatureBounce         = PermissionError("signature relayed by unrelated program")
	TokenAlreadyExists      = ExistsError("token already exists")
	TokenDoesNotExist       = NotFoundError("token does not exist")
	TransferRejected        = ProcessError("transfer rejected by recipient contract")
	TransferStale           = StaleError("owner changed during recipient callback")
	TransferToSelf          = InvalidError("transfer to self")
	UnexpectedExtraArgument = InvalidError("unexpected extra argument")
	WrongNetworkForAddress  = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e StaleError) Error() string      { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrStale(e error) bool      { _, ok := e.(StaleError); return ok }
