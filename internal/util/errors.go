package util

import "errors"

var (
	ErrPhoneRegistered    = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrResultNotFound     = errors.New("exam result not found")
	ErrInvalidSection     = errors.New("unknown legislation section")
	ErrInvalidMode        = errors.New("unknown test mode")
	ErrInvalidCorrect     = errors.New("correct option index out of range")
	ErrInvalidTranslation = errors.New("invalid translation document")
	ErrInvalidImport      = errors.New("invalid knowledge base document")
)
