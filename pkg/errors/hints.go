package errors

// Hint returns a short remediation hint for an error category.
// Hints name a class of fix, never transport internals.
func Hint(code ErrorCode) string {
	switch code {
	case ErrRemoteUnauthorized:
		return "check that your access token is set and has not expired"
	case ErrRemoteForbidden:
		return "check that your access token has the required scopes"
	case ErrRemoteNotFound:
		return "the remote record may have been deleted; run push to recreate it"
	case ErrRemoteInvalidPayload:
		return "the remote store rejected the payload; check the profile name and contents"
	case ErrRemoteRateLimited:
		return "the remote store is rate limiting requests; wait a moment and retry"
	case ErrRemoteUnavailable:
		return "check your network connection"
	case ErrConfigFileMissing, ErrConfigFileUnreadable:
		return "check that the editor configuration files exist and are readable"
	case ErrConfigFileWrite:
		return "check permissions on the editor configuration directory"
	case ErrExtensionInstall, ErrExtensionUninstall:
		return "check that the editor command line tool is on your PATH"
	default:
		return ""
	}
}

// UserMessage renders an error for display: the structured message plus a
// remediation hint when one applies.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hint := Hint(GetErrorCode(err)); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}
