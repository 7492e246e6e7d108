package hosting

import "fmt"

// UploadError reports a rejected or failed file upload. Detail holds the raw
// response body when the backend answered.
type UploadError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (status %d): %s", e.StatusCode, e.Detail)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// DeployError reports a rejected deployment creation.
type DeployError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("deployment failed (status %d): %s", e.StatusCode, e.Detail)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// AliasError reports that an alias could not be attached. The deployment it
// was meant for is unaffected.
type AliasError struct {
	Alias      string
	StatusCode int
	Detail     string
	Err        error
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("alias %s failed (status %d): %s", e.Alias, e.StatusCode, e.Detail)
}

func (e *AliasError) Unwrap() error {
	return e.Err
}
