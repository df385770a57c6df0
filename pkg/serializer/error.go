package serializer

import (
	"github.com/gin-gonic/gin"
)

// AppError application error, implements the error interface
type AppError struct {
	Code     int
	Msg      string
	RawError error
}

// NewError returns a new AppError
func NewError(code int, msg string, err error) AppError {
	return AppError{
		Code:     code,
		Msg:      msg,
		RawError: err,
	}
}

// WithError attaches an underlying error to the AppError
func (err *AppError) WithError(raw error) AppError {
	err.RawError = raw
	return *err
}

// Error returns the human-readable message decided by the business code
func (err AppError) Error() string {
	return err.Msg
}

// Three-digit codes reuse their HTTP meaning.
// Five-digit codes starting with 4 are client-side errors, starting with
// 5 are server-side errors.
const (
	// CodeNotFullySuccess partial success in a batch operation
	CodeNotFullySuccess = 203
	// CodeCheckLogin not logged in
	CodeCheckLogin = 401
	// CodeNoPermissionErr capability check failed
	CodeNoPermissionErr = 403
	// CodeNotFound resource not found
	CodeNotFound = 404
	// CodeInvalidName folder name is empty or purely numeric
	CodeInvalidName = 40101
	// CodeParentNotFound parent folder does not exist
	CodeParentNotFound = 40102
	// CodeCannotNestUnderUnassigned the Unassigned folder cannot have children
	CodeCannotNestUnderUnassigned = 40103
	// CodeDepthLimitExceeded only one level of nesting is allowed
	CodeDepthLimitExceeded = 40104
	// CodeProtectedFolder the Unassigned folder cannot be renamed or deleted
	CodeProtectedFolder = 40105
	// CodeEmptySelection move called with no attachments
	CodeEmptySelection = 40106
	// CodeFolderNotFound target folder does not exist
	CodeFolderNotFound = 40107
	// CodeParamErr generic parameter error
	CodeParamErr = 40001
	// CodeDBError database operation failed
	CodeDBError = 50001
	// CodeCacheOperation cache operation failed
	CodeCacheOperation = 50006
	// CodeNotSet no code decided yet, try to derive one from the error
	CodeNotSet = -1
)

// DBErr database operation failure
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "Database operation failed."
	}
	return Err(CodeDBError, msg, err)
}

// ParamErr parameter error
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "Invalid parameters."
	}
	return Err(CodeParamErr, msg, err)
}

// CheckLogin not-logged-in response
func CheckLogin() Response {
	return Err(CodeCheckLogin, "Login required.", nil)
}

// Err builds an error response, preferring details carried by an AppError
func Err(errCode int, msg string, err error) Response {
	if appError, ok := err.(AppError); ok {
		errCode = appError.Code
		err = appError.RawError
		msg = appError.Msg
	}

	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// Hide underlying errors in production
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = err.Error()
	}
	return res
}
