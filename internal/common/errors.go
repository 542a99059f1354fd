// Package common defines shared sentinel errors used across NoticeEase
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound = errors.New("not found")

	// remote call errors (non-2xx status or transport failure)
	ErrNetwork     = errors.New("network error")
	ErrUnavailable = errors.New("server unavailable")

	// client-side form constraints, never reach the network
	ErrValidation = errors.New("validation error")

	// push subscribe/unsubscribe failures
	ErrSubscription = errors.New("subscription error")

	// notification permission could not be confirmed at login
	ErrPermission = errors.New("please enable notifications to login")
)
